package widget

import (
	"errors"
	"strings"

	"github.com/goliatone/go-phoneinput/pkg/intltel"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when messages
// are localised without a translator.
var ErrMissingTranslator = errors.New("widget: translator not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. fallback is the English default.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Translation keys.
const (
	KeyRequired           = "phone_input.required"
	KeyLetters            = "phone_input.letters"
	KeyInvalidNumber      = "phone_input.invalid_number"
	KeyInvalidCountryCode = "phone_input.invalid_country_code"
	KeyTooShort           = "phone_input.too_short"
	KeyTooLong            = "phone_input.too_long"
)

// Messages holds the user-facing validation texts. Library is indexed by the
// library validation error code; codes outside it use Fallback.
type Messages struct {
	Required string
	Letters  string
	Library  []string
	Fallback string
}

// DefaultMessages returns the English texts.
func DefaultMessages() Messages {
	return Messages{
		Required: "This field is required",
		Letters:  "Phone number cannot contain letters",
		Library: []string{
			"Invalid number",
			"Please specify the country",
			"Too short",
			"Too long",
			"Invalid number",
		},
		Fallback: "Invalid number",
	}
}

var libraryKeys = []string{
	KeyInvalidNumber,
	KeyInvalidCountryCode,
	KeyTooShort,
	KeyTooLong,
	KeyInvalidNumber,
}

// ForCode maps a library validation error to its message.
func (m Messages) ForCode(code intltel.ValidationError) string {
	idx := int(code)
	if idx >= 0 && idx < len(m.Library) && m.Library[idx] != "" {
		return m.Library[idx]
	}
	return m.Fallback
}

func (m Messages) withDefaults() Messages {
	def := DefaultMessages()
	if strings.TrimSpace(m.Required) == "" {
		m.Required = def.Required
	}
	if strings.TrimSpace(m.Letters) == "" {
		m.Letters = def.Letters
	}
	if strings.TrimSpace(m.Fallback) == "" {
		m.Fallback = def.Fallback
	}
	if len(m.Library) == 0 {
		m.Library = def.Library
	}
	return m
}

// Localize translates every message, keeping the current text when a key has
// no translation.
func (m Messages) Localize(t Translator, locale string, onMissing MissingTranslationHandler) Messages {
	out := Messages{
		Required: translate(t, locale, KeyRequired, m.Required, onMissing),
		Letters:  translate(t, locale, KeyLetters, m.Letters, onMissing),
		Fallback: translate(t, locale, KeyInvalidNumber, m.Fallback, onMissing),
		Library:  make([]string, len(m.Library)),
	}
	for i, text := range m.Library {
		if i < len(libraryKeys) {
			text = translate(t, locale, libraryKeys[i], text, onMissing)
		}
		out.Library[i] = text
	}
	return out
}

func translate(t Translator, locale, key, fallback string, onMissing MissingTranslationHandler) string {
	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, fallback, ErrMissingTranslator)
		}
		return fallback
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if onMissing != nil {
		return onMissing(locale, key, fallback, err)
	}
	return fallback
}
