package relevance

import (
	"fmt"
	"math/rand"
)

// contextTemplates frame a suggestion for readers; %s is the target title.
var contextTemplates = []string{
	"Learn more about %s",
	"Discover %s",
	"Read our guide on %s",
	"Explore %s",
	"Find out about %s",
	"Check out %s",
	"Dive deeper into %s",
	"See also: %s",
}

// PhrasePicker chooses one context template. Tests inject a fixed picker.
type PhrasePicker interface {
	Pick(templates []string) string
}

// PickerFunc adapts a function to PhrasePicker.
type PickerFunc func(templates []string) string

func (f PickerFunc) Pick(templates []string) string {
	return f(templates)
}

// RandomPicker picks uniformly at random.
type RandomPicker struct{}

func (RandomPicker) Pick(templates []string) string {
	if len(templates) == 0 {
		return ""
	}
	return templates[rand.Intn(len(templates))]
}

// FirstPicker always picks the first template.
var FirstPicker = PickerFunc(func(templates []string) string {
	if len(templates) == 0 {
		return ""
	}
	return templates[0]
})

func contextFor(p PhrasePicker, title string) string {
	return fmt.Sprintf(p.Pick(contextTemplates), title)
}
