// Package prompt asks for a phone number in the terminal. Answers are checked
// by a headless phone-input widget, so the terminal reports the same messages
// a browser user would see.
package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-phoneinput/pkg/intltel"
	"github.com/goliatone/go-phoneinput/pkg/page"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

const runTimeout = 10 * time.Second

// Result is the accepted answer.
type Result struct {
	Number    string               `json:"number"`
	Formatted string               `json:"formatted"`
	Country   *intltel.CountryData `json:"country,omitempty"`
}

// Prompter runs the phone prompt flow.
type Prompter struct {
	driver     Driver
	format     OutputFormat
	theme      Theme
	logger     *slog.Logger
	pageOpts   []page.Option
	widgetOpts []widget.Option
}

// New creates a prompter backed by the survey driver unless another is given.
func New(options ...Option) *Prompter {
	p := &Prompter{
		format: OutputFormatPrettyText,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(nil)
	}
	return p
}

// Run asks for a country when attrs carry no initial-country, then for the
// number until the widget accepts it.
func (p *Prompter) Run(ctx context.Context, attrs map[string]string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	pg := page.New(append([]page.Option{page.WithLogger(p.logger)}, p.pageOpts...)...)
	w := widget.New(append([]widget.Option{widget.WithLogger(p.logger), widget.WithAttributes(attrs)}, p.widgetOpts...)...)
	cfg := w.Configuration()

	if cfg.InitialCountry == "" {
		country, err := p.askCountry(ctx, cfg.CountryOrder)
		if err != nil {
			return Result{}, err
		}
		w.SetAttribute(widget.AttrInitialCountry, country)
		cfg.InitialCountry = country
	}

	var feedback string
	pg.AddEventListener(nil, widget.EventValid, func(ev *page.Event) {
		if detail, ok := ev.Detail.(widget.ValidityDetail); ok {
			feedback = detail.Error
		}
	})

	if err := pg.Attach(w); err != nil {
		return Result{}, fmt.Errorf("prompt: attach widget: %w", err)
	}
	defer pg.Detach(w)
	if err := run(ctx, pg); err != nil {
		return Result{}, err
	}
	if w.State() != widget.Ready {
		return Result{}, ErrNotReady
	}

	check := func(answer string) error {
		var valid bool
		pg.Post(func() {
			field := w.Field()
			field.SetValue(strings.TrimSpace(answer))
			pg.Fire(field, "input")
			pg.Post(func() { valid = w.Validate() })
		})
		if err := run(ctx, pg); err != nil {
			return err
		}
		if !valid {
			return errors.New(feedback)
		}
		return nil
	}

	message := cfg.Label
	if message == "" {
		message = "Phone number"
	}
	answer, err := p.driver.Input(ctx, InputConfig{
		Message:   p.theme.PromptPrefix + message,
		Default:   cfg.Value,
		Help:      cfg.Placeholder,
		Validator: check,
	})
	if err != nil {
		return Result{}, err
	}
	if err := check(answer); err != nil {
		return Result{}, fmt.Errorf("prompt: %w", err)
	}

	result := Result{
		Number:    w.GetNumber(),
		Formatted: w.GetNumberFormatted(),
		Country:   w.GetSelectedCountryData(),
	}
	summary, err := p.summary(result)
	if err != nil {
		return Result{}, err
	}
	if err := p.driver.Info(ctx, summary); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (p *Prompter) askCountry(ctx context.Context, order []string) (string, error) {
	countries := intltel.OrderedCountries(order)
	options := make([]string, len(countries))
	for i, country := range countries {
		options[i] = CountryLabel(country)
	}
	idx, err := p.driver.Select(ctx, SelectConfig{
		Message:  p.theme.PromptPrefix + "Country",
		Options:  options,
		PageSize: 10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(countries) {
		return "", fmt.Errorf("prompt: country selection %d out of range", idx)
	}
	return countries[idx].ISO2, nil
}

func (p *Prompter) summary(result Result) (string, error) {
	if p.format == OutputFormatJSON {
		payload, err := json.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("prompt: encode result: %w", err)
		}
		return string(payload), nil
	}
	if result.Number == "" {
		return p.theme.InfoPrefix + "No number entered", nil
	}
	text := p.theme.InfoPrefix + result.Number
	if result.Country != nil {
		text += " (" + result.Country.Name + ")"
	}
	return text, nil
}

// CountryLabel renders a country as shown in the selection list.
func CountryLabel(country intltel.CountryData) string {
	return fmt.Sprintf("%s (+%s)", country.Name, country.DialCode)
}

func run(ctx context.Context, pg *page.Page) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()
	if err := pg.Run(ctx); err != nil {
		return fmt.Errorf("prompt: run page: %w", err)
	}
	return nil
}
