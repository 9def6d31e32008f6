package intltel

// StaticField is an in-memory Field. Events raised by the library are
// recorded in order.
type StaticField struct {
	Text   string
	Events []string
}

func (f *StaticField) Value() string { return f.Text }

func (f *StaticField) SetValue(value string) { f.Text = value }

func (f *StaticField) Notify(event string) { f.Events = append(f.Events, event) }

// Evaluation is a one-shot check of a number outside any widget.
type Evaluation struct {
	Valid   bool            `json:"isValid"`
	Number  string          `json:"number"`
	Code    ValidationError `json:"errorCode"`
	Country *CountryData    `json:"country,omitempty"`
}

// Evaluate binds a throwaway instance to number and reports its state. iso2
// is used when the number has no international prefix.
func Evaluate(lib Library, number, iso2 string) (Evaluation, error) {
	if lib == nil {
		lib = NewLibrary()
	}
	field := &StaticField{}
	inst, err := lib.Bind(field, Options{InitialCountry: iso2, AutoPlaceholder: "off"})
	if err != nil {
		return Evaluation{}, err
	}
	defer inst.Destroy()

	inst.SetNumber(number)
	out := Evaluation{
		Valid:   inst.IsValidNumber(),
		Number:  inst.GetNumber(),
		Country: inst.GetSelectedCountryData(),
	}
	if !out.Valid {
		out.Code = inst.GetValidationError()
	}
	return out, nil
}
