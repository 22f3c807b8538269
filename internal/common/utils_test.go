package common

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/blog-linker/models"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "chatbot", []string{"chatbot"}},
		{"trims and drops blanks", " ai automation , ,crm integration ", []string{"ai automation", "crm integration"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	resp := models.Response{Command: "build", Data: map[string]int{"articles": 3}}
	if err := WriteYAML(&buf, resp); err != nil {
		t.Fatalf("WriteYAML() failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "command: build") || !strings.Contains(out, "articles: 3") {
		t.Errorf("WriteYAML() = %q", out)
	}
	if strings.Contains(out, "error:") {
		t.Errorf("nil error should be omitted: %q", out)
	}
}
