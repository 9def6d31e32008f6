package prompt

import (
	"log/slog"

	"github.com/goliatone/go-phoneinput/pkg/page"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

// OutputFormat controls how the collected number is reported.
type OutputFormat string

const (
	// OutputFormatJSON emits the Result as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithOutputFormat selects how the result is reported.
func WithOutputFormat(format OutputFormat) Option {
	return func(p *Prompter) {
		if format != "" {
			p.format = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(p *Prompter) {
		p.theme = theme
	}
}

// WithLogger sets the logger for the page and widget.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPageOptions adds options for the headless page.
func WithPageOptions(opts ...page.Option) Option {
	return func(p *Prompter) {
		p.pageOpts = append(p.pageOpts, opts...)
	}
}

// WithWidgetOptions adds options for the widget.
func WithWidgetOptions(opts ...widget.Option) Option {
	return func(p *Prompter) {
		p.widgetOpts = append(p.widgetOpts, opts...)
	}
}
