package detector

import (
	"net/url"
	"testing"
)

func TestNew_DisablesLanguageWithFewerThanTwo(t *testing.T) {
	d := New([]string{"english", "klingon"})
	if lang, conf := d.DetectLanguage("This is plainly an English sentence."); lang != "" || conf != 0 {
		t.Errorf("DetectLanguage() = %q, %v; want disabled", lang, conf)
	}
}

func TestDetectLanguage(t *testing.T) {
	d := New([]string{"English", "spanish"})

	tests := []struct {
		text string
		want string
	}{
		{"Automate your customer service with a chatbot that answers questions around the clock.", "en"},
		{"Automatiza el servicio al cliente con un asistente que responde preguntas a cualquier hora.", "es"},
		{"   ", ""},
	}
	for _, tt := range tests {
		got, _ := d.DetectLanguage(tt.text)
		if got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAnalyze_NilDetector(t *testing.T) {
	var d *Detector
	sig, err := d.Analyze("<html><body><p>hello</p></body></html>", nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if sig != (Signals{}) {
		t.Errorf("Analyze() on nil detector = %+v, want zero", sig)
	}
}

func articlePage(title, paragraph string) string {
	var body string
	for i := 0; i < 4; i++ {
		body += "<p>" + paragraph + "</p>\n"
	}
	return "<html><head><title>" + title + "</title></head><body><article><h1>" + title + "</h1>\n" +
		body + "</article></body></html>"
}

func TestAnalyze(t *testing.T) {
	d := New([]string{"english", "spanish", "portuguese"})

	tests := []struct {
		name     string
		page     string
		wantLang string
	}{
		{
			name: "english article",
			page: articlePage("Chatbots for customer service",
				"Customer service teams answer the same questions every day. A chatbot on your website "+
					"can handle these questions, collect contact details and pass complex conversations to a person."),
			wantLang: "en",
		},
		{
			name: "spanish article",
			page: articlePage("Chatbots para atención al cliente",
				"Los equipos de atención al cliente responden las mismas preguntas todos los días. Un asistente "+
					"en su sitio web puede responder estas preguntas y pasar las conversaciones difíciles a una persona."),
			wantLang: "es",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := d.Analyze(tt.page, &url.URL{Path: "/blog/post.html"})
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if sig.WordCount < 50 {
				t.Errorf("WordCount = %d, want >= 50", sig.WordCount)
			}
			if sig.Excerpt == "" {
				t.Error("Excerpt is empty")
			}
			if sig.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", sig.Language, tt.wantLang)
			}
			if sig.LanguageConfidence <= 0 || sig.LanguageConfidence > 1 {
				t.Errorf("LanguageConfidence = %v, want (0,1]", sig.LanguageConfidence)
			}
		})
	}
}
