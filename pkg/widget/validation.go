package widget

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-phoneinput/pkg/intltel"
)

// IsValid reports whether the current input is acceptable. It is false until
// the library is bound.
func (w *Widget) IsValid() bool {
	if w.instance == nil {
		return false
	}
	value := strings.TrimSpace(w.GetNumberFormatted())
	if value == "" {
		return !w.host.HasAttr(AttrRequired)
	}
	if containsLetter(value) {
		return false
	}
	return w.instance.IsValidNumber()
}

// GetNumber returns the canonical number, or "" until the library is bound.
func (w *Widget) GetNumber() string {
	if w.instance == nil {
		return ""
	}
	return w.instance.GetNumber()
}

// GetNumberFormatted returns the text shown in the visible field.
func (w *Widget) GetNumberFormatted() string {
	if input := w.display(); input != nil {
		return input.Value()
	}
	return ""
}

// GetValidationError returns the library's reason for rejecting the number.
// ok is false until the library is bound.
func (w *Widget) GetValidationError() (code intltel.ValidationError, ok bool) {
	if w.instance == nil {
		return 0, false
	}
	return w.instance.GetValidationError(), true
}

// GetSelectedCountryData returns the selected country, or nil.
func (w *Widget) GetSelectedCountryData() *intltel.CountryData {
	if w.instance == nil {
		return nil
	}
	return w.instance.GetSelectedCountryData()
}

// SetNumber writes number through the library and resyncs the hidden field.
// It does nothing until the library is bound.
func (w *Widget) SetNumber(number string) {
	if w.instance == nil || w.display() == nil {
		return
	}
	w.instance.SetNumber(number)
	w.syncHidden()
}

// SetCountry selects the country by ISO2 code, as picking it from the country
// list does. A change resyncs the hidden field and dispatches EventChange once
// the page loop delivers the library's countrychange. Unknown codes are
// ignored; "" clears the selection. It does nothing until the library is
// bound.
func (w *Widget) SetCountry(iso2 string) {
	if w.instance == nil {
		return
	}
	w.instance.SetCountry(iso2)
}

// Value is GetNumber.
func (w *Widget) Value() string {
	return w.GetNumber()
}

// SetValue is SetNumber.
func (w *Widget) SetValue(number string) {
	w.SetNumber(number)
}

// Validate checks the input, shows or clears the feedback message and
// dispatches EventValid. When the library is not bound, input that passes the
// required and letter checks is reported invalid without any feedback or
// event.
func (w *Widget) Validate() bool {
	value := strings.TrimSpace(w.GetNumberFormatted())

	switch {
	case value == "" && w.host.HasAttr(AttrRequired):
		w.reject(w.messages.Required)
		return false
	case value == "":
		w.accept()
		return true
	case containsLetter(value):
		w.reject(w.messages.Letters)
		return false
	}

	if w.instance == nil {
		w.logger.Debug("validate skipped, library not bound", "state", w.state.String())
		return false
	}
	if !w.instance.IsValidNumber() {
		w.reject(w.messages.ForCode(w.instance.GetValidationError()))
		return false
	}
	w.accept()
	return true
}

// Reset restores the configured initial value and clears the feedback.
func (w *Widget) Reset() {
	input := w.display()
	if input == nil {
		return
	}
	initial := w.host.GetAttr(AttrValue)
	input.SetValue(initial)
	w.SetNumber(initial)
	w.clearValidation()
}

// Focus moves page focus to the visible field.
func (w *Widget) Focus() {
	input := w.display()
	if input == nil || w.page == nil {
		return
	}
	w.page.Focus(input)
}

func (w *Widget) accept() {
	w.clearValidation()
	w.dispatch(EventValid, ValidityDetail{IsValid: true, Number: w.GetNumber()})
}

func (w *Widget) reject(message string) {
	w.showValidationError(message)
	w.dispatch(EventValid, ValidityDetail{IsValid: false, Error: message, Number: w.GetNumber()})
}

func (w *Widget) showValidationError(message string) {
	input, feedback := w.display(), w.feedback()
	if input == nil || feedback == nil {
		return
	}
	input.AddClass("is-invalid")
	feedback.SetText(message)
}

func (w *Widget) clearValidation() {
	if input := w.display(); input != nil {
		input.RemoveClass("is-invalid")
	}
	if feedback := w.feedback(); feedback != nil {
		feedback.SetText("")
	}
}

func (w *Widget) syncHidden() {
	if hidden := w.hidden(); hidden != nil {
		hidden.SetValue(w.GetNumber())
	}
}

func containsLetter(value string) bool {
	return strings.IndexFunc(value, unicode.IsLetter) >= 0
}
