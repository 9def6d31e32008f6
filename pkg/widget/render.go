package widget

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	tpl "github.com/goliatone/go-phoneinput/pkg/render/template"
	"github.com/goliatone/go-phoneinput/pkg/render/template/gotemplate"
)

const (
	templateName = "templates/phone_input.tmpl"
	// ThemePartial is the go-theme partial key that replaces the widget
	// template.
	ThemePartial = "forms.phone-input"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// TemplatesFS exposes the built-in template, for hosts that compose it into
// their own engine next to theme partials.
func TemplatesFS() fs.FS {
	return templateFiles
}

var defaultEngine = sync.OnceValues(func() (tpl.TemplateRenderer, error) {
	engine, err := gotemplate.New(templateFiles)
	if err != nil {
		return nil, err
	}
	return engine, nil
})

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithTemplateRenderer replaces the built-in go-template engine.
func WithTemplateRenderer(engine tpl.TemplateRenderer) RendererOption {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithThemeConfig applies a go-theme selection. Its partials may override the
// widget template through ThemePartial.
func WithThemeConfig(cfg *theme.RendererConfig) RendererOption {
	return func(r *Renderer) {
		if cfg == nil {
			return
		}
		r.themeName = cfg.Theme
		if partial := strings.TrimSpace(cfg.Partials[ThemePartial]); partial != "" {
			r.partial = partial
		}
	}
}

// WithRendererLogger sets the logger used to report partial fallbacks.
func WithRendererLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer turns a configuration into the widget markup. It holds no
// per-widget state and is safe to share.
type Renderer struct {
	engine    tpl.TemplateRenderer
	partial   string
	themeName string
	logger    *slog.Logger
}

// NewRenderer builds a renderer on the shared built-in engine unless another
// engine is supplied.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	r := &Renderer{logger: slog.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := defaultEngine()
		if err != nil {
			return nil, fmt.Errorf("widget: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Render produces the widget markup. A failing theme partial falls back to
// the built-in template.
func (r *Renderer) Render(cfg Configuration) (string, error) {
	data := map[string]any{
		"name":        cfg.Name,
		"value":       cfg.Value,
		"label":       sanitizeText(cfg.Label),
		"placeholder": sanitizeText(cfg.Placeholder),
		"disabled":    cfg.Disabled,
		"required":    cfg.Required,
		"theme":       r.themeName,
	}

	if r.partial != "" {
		out, err := r.engine.RenderTemplate(r.partial, data)
		if err == nil {
			return out, nil
		}
		r.logger.Warn("theme partial failed, using built-in template", "partial", r.partial, "err", err)
	}

	out, err := r.engine.RenderTemplate(templateName, data)
	if err != nil {
		return "", fmt.Errorf("widget: render %q: %w", templateName, err)
	}
	return out, nil
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from label and placeholder text. The template
// escapes on output, so the policy's own escaping is undone here.
func sanitizeText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(textPolicy.Sanitize(raw))
}
