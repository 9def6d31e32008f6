package widget

import (
	"github.com/goliatone/go-phoneinput/pkg/dom"
	"github.com/goliatone/go-phoneinput/pkg/intltel"
	"github.com/goliatone/go-phoneinput/pkg/page"
)

// Events dispatched from the host element. All of them bubble.
const (
	EventChange = "phone-change"
	EventBlur   = "phone-blur"
	EventValid  = "phone-valid"
)

// interactionEvents are the visible field events that resync the widget.
var interactionEvents = []string{"change", "blur", "keyup", "paste", "input", "countrychange"}

// ChangeDetail accompanies EventChange.
type ChangeDetail struct {
	Value   string               `json:"value"`
	Number  string               `json:"number"`
	IsValid bool                 `json:"isValid"`
	Country *intltel.CountryData `json:"country"`
}

// BlurDetail accompanies EventBlur.
type BlurDetail struct {
	Value   string `json:"value"`
	Number  string `json:"number"`
	IsValid bool   `json:"isValid"`
}

// ValidityDetail accompanies EventValid. Error is empty when valid.
type ValidityDetail struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
	Number  string `json:"number"`
}

func (w *Widget) listen() {
	input := w.display()
	if input == nil || w.page == nil {
		return
	}
	for _, typ := range interactionEvents {
		off := w.page.AddEventListener(input, typ, func(*page.Event) {
			w.onInteraction(input)
		})
		w.unlisten = append(w.unlisten, off)
	}
	off := w.page.AddEventListener(input, "blur", func(*page.Event) {
		w.dispatch(EventBlur, BlurDetail{
			Value:   input.Value(),
			Number:  w.GetNumber(),
			IsValid: w.IsValid(),
		})
	})
	w.unlisten = append(w.unlisten, off)
}

func (w *Widget) onInteraction(input *dom.Element) {
	w.clearValidation()
	w.syncHidden()
	w.dispatch(EventChange, ChangeDetail{
		Value:   input.Value(),
		Number:  w.GetNumber(),
		IsValid: w.IsValid(),
		Country: w.GetSelectedCountryData(),
	})
}

func (w *Widget) dispatch(typ string, detail any) {
	if w.page == nil {
		return
	}
	w.page.Dispatch(w.host, &page.Event{Type: typ, Detail: detail, Bubbles: true})
}
