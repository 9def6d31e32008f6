package intltel

import (
	"errors"
	"strings"
)

// GlobalName is the page global the library script defines once loaded.
const GlobalName = "intlTelInput"

var (
	// ErrFieldMissing is returned when Bind receives no field.
	ErrFieldMissing = errors.New("intltel: field is required")
	// ErrUtilsUnavailable is returned when the deferred utilities loader fails.
	ErrUtilsUnavailable = errors.New("intltel: utilities unavailable")
)

// ValidationError mirrors the libphonenumber possibility reasons reported by
// intl-tel-input's getValidationError.
type ValidationError int

const (
	IsPossible ValidationError = iota
	InvalidCountryCode
	TooShort
	TooLong
	IsPossibleLocalOnly
	InvalidLength
)

func (v ValidationError) String() string {
	switch v {
	case IsPossible:
		return "IS_POSSIBLE"
	case InvalidCountryCode:
		return "INVALID_COUNTRY_CODE"
	case TooShort:
		return "TOO_SHORT"
	case TooLong:
		return "TOO_LONG"
	case IsPossibleLocalOnly:
		return "IS_POSSIBLE_LOCAL_ONLY"
	case InvalidLength:
		return "INVALID_LENGTH"
	default:
		return "UNKNOWN"
	}
}

// NumberType restricts which kinds of numbers count as valid.
type NumberType string

const (
	FixedLine   NumberType = "FIXED_LINE"
	Mobile      NumberType = "MOBILE"
	TollFree    NumberType = "TOLL_FREE"
	PremiumRate NumberType = "PREMIUM_RATE"
	VOIP        NumberType = "VOIP"
)

// CountryData describes a selectable country.
type CountryData struct {
	Name     string `json:"name"`
	ISO2     string `json:"iso2"`
	DialCode string `json:"dialCode"`
}

// Field is the text field an instance is attached to. Notify delivers events
// the library raises on the field, such as "countrychange".
type Field interface {
	Value() string
	SetValue(value string)
	Notify(event string)
}

// Options configure a bound instance.
type Options struct {
	// CountryOrder lists ISO2 codes shown first in the country list.
	CountryOrder []string
	// InitialCountry selects a country before any number is entered.
	InitialCountry string
	// SeparateDialCode shows the dial code beside the field, so the typed
	// text holds the national part only.
	SeparateDialCode bool
	// AutoPlaceholder is "off", "polite" or "aggressive".
	AutoPlaceholder string
	// FormatOnDisplay reformats numbers written through SetNumber.
	FormatOnDisplay bool
	// ValidationNumberTypes limits valid numbers to the listed types. Nil
	// accepts every type.
	ValidationNumberTypes []NumberType
	// LoadUtils resolves the heavier utilities module on first use.
	LoadUtils func() error
}

// Library attaches phone behaviour to a field.
type Library interface {
	Bind(field Field, opts Options) (Instance, error)
}

// Instance is the per-field handle returned by Bind.
type Instance interface {
	SetNumber(number string)
	GetNumber() string
	IsValidNumber() bool
	GetValidationError() ValidationError
	GetSelectedCountryData() *CountryData
	SetCountry(iso2 string)
	Destroy()
}

// NormalizeISO2 lower-cases and trims a country code.
func NormalizeISO2(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
