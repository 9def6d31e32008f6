package intltel

import (
	"errors"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// Unknown is reported when the number cannot be parsed for a reason outside
// the libphonenumber possibility reasons.
const Unknown ValidationError = -99

// NumberLibrary is the default Library, backed by nyaruka/phonenumbers.
type NumberLibrary struct{}

var _ Library = (*NumberLibrary)(nil)

// NewLibrary returns the default library.
func NewLibrary() *NumberLibrary {
	return &NumberLibrary{}
}

// Bind attaches a new instance to field.
func (l *NumberLibrary) Bind(field Field, opts Options) (Instance, error) {
	if field == nil {
		return nil, ErrFieldMissing
	}
	opts.CountryOrder = append([]string(nil), opts.CountryOrder...)
	// An empty restriction list means unrestricted, same as nil.
	opts.ValidationNumberTypes = append([]NumberType(nil), opts.ValidationNumberTypes...)

	inst := &numberInstance{field: field, opts: opts}
	if country, ok := Lookup(opts.InitialCountry); ok {
		inst.country = country.ISO2
	}
	inst.selectCountryFromNumber(field.Value(), false)
	return inst, nil
}

type numberInstance struct {
	field     Field
	opts      Options
	country   string
	destroyed bool

	utilsOnce sync.Once
	utilsErr  error
}

func (i *numberInstance) utils() error {
	i.utilsOnce.Do(func() {
		if i.opts.LoadUtils == nil {
			return
		}
		if err := i.opts.LoadUtils(); err != nil {
			i.utilsErr = errors.Join(ErrUtilsUnavailable, err)
		}
	})
	return i.utilsErr
}

func (i *numberInstance) region() string {
	return strings.ToUpper(i.country)
}

// fullNumber is the typed text, prefixed with the selected dial code when the
// dial code is shown separately.
func (i *numberInstance) fullNumber() string {
	if i.destroyed {
		return ""
	}
	value := strings.TrimSpace(i.field.Value())
	if value == "" || !i.opts.SeparateDialCode || strings.HasPrefix(value, "+") {
		return value
	}
	if country, ok := Lookup(i.country); ok {
		return "+" + country.DialCode + " " + value
	}
	return value
}

func (i *numberInstance) parse() (*phonenumbers.PhoneNumber, error) {
	return phonenumbers.Parse(i.fullNumber(), i.region())
}

func (i *numberInstance) SetNumber(number string) {
	if i.destroyed {
		return
	}
	number = strings.TrimSpace(number)
	i.selectCountryFromNumber(number, true)

	display := number
	if i.opts.SeparateDialCode && strings.HasPrefix(display, "+") {
		if country, ok := Lookup(i.country); ok {
			display = strings.TrimSpace(strings.TrimPrefix(display, "+"+country.DialCode))
		}
	}
	if i.opts.FormatOnDisplay && number != "" && i.utils() == nil {
		if parsed, err := phonenumbers.Parse(number, i.region()); err == nil {
			display = phonenumbers.Format(parsed, phonenumbers.NATIONAL)
		}
	}
	i.field.SetValue(display)
}

func (i *numberInstance) GetNumber() string {
	full := i.fullNumber()
	if full == "" {
		return ""
	}
	if i.utils() != nil {
		return full
	}
	parsed, err := i.parse()
	if err != nil {
		return full
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

func (i *numberInstance) IsValidNumber() bool {
	if i.fullNumber() == "" || i.utils() != nil {
		return false
	}
	parsed, err := i.parse()
	if err != nil {
		return false
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return false
	}
	if i.opts.ValidationNumberTypes == nil {
		return true
	}
	return matchesType(phonenumbers.GetNumberType(parsed), i.opts.ValidationNumberTypes)
}

func (i *numberInstance) GetValidationError() ValidationError {
	if i.utils() != nil {
		return Unknown
	}
	parsed, err := i.parse()
	if err != nil {
		switch {
		case errors.Is(err, phonenumbers.ErrInvalidCountryCode):
			return InvalidCountryCode
		case errors.Is(err, phonenumbers.ErrTooShortNSN), errors.Is(err, phonenumbers.ErrTooShortAfterIDD):
			return TooShort
		case errors.Is(err, phonenumbers.ErrNumTooLong):
			return TooLong
		default:
			return Unknown
		}
	}
	switch phonenumbers.IsPossibleNumberWithReason(parsed) {
	case phonenumbers.IS_POSSIBLE:
		return IsPossible
	case phonenumbers.IS_POSSIBLE_LOCAL_ONLY:
		return IsPossibleLocalOnly
	case phonenumbers.INVALID_COUNTRY_CODE:
		return InvalidCountryCode
	case phonenumbers.TOO_SHORT:
		return TooShort
	case phonenumbers.TOO_LONG:
		return TooLong
	default:
		return InvalidLength
	}
}

func (i *numberInstance) GetSelectedCountryData() *CountryData {
	if i.destroyed {
		return nil
	}
	country, ok := Lookup(i.country)
	if !ok {
		return nil
	}
	return &country
}

func (i *numberInstance) SetCountry(iso2 string) {
	if i.destroyed {
		return
	}
	iso2 = NormalizeISO2(iso2)
	if iso2 == "" {
		i.changeCountry("")
		return
	}
	if _, ok := Lookup(iso2); ok {
		i.changeCountry(iso2)
	}
}

func (i *numberInstance) Destroy() {
	i.destroyed = true
}

// selectCountryFromNumber switches the selected country to the one implied by
// an international number.
func (i *numberInstance) selectCountryFromNumber(number string, notify bool) {
	number = strings.TrimSpace(number)
	if !strings.HasPrefix(number, "+") {
		return
	}
	parsed, err := phonenumbers.Parse(number, "")
	if err != nil {
		return
	}
	region := phonenumbers.GetRegionCodeForNumber(parsed)
	if region == "" || region == "ZZ" {
		return
	}
	if !notify {
		i.country = NormalizeISO2(region)
		return
	}
	i.changeCountry(NormalizeISO2(region))
}

func (i *numberInstance) changeCountry(iso2 string) {
	if iso2 == i.country {
		return
	}
	i.country = iso2
	i.field.Notify("countrychange")
}

func matchesType(got phonenumbers.PhoneNumberType, allowed []NumberType) bool {
	for _, want := range allowed {
		switch want {
		case FixedLine:
			if got == phonenumbers.FIXED_LINE || got == phonenumbers.FIXED_LINE_OR_MOBILE {
				return true
			}
		case Mobile:
			if got == phonenumbers.MOBILE || got == phonenumbers.FIXED_LINE_OR_MOBILE {
				return true
			}
		case TollFree:
			if got == phonenumbers.TOLL_FREE {
				return true
			}
		case PremiumRate:
			if got == phonenumbers.PREMIUM_RATE {
				return true
			}
		case VOIP:
			if got == phonenumbers.VOIP {
				return true
			}
		}
	}
	return false
}
