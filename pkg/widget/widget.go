package widget

import (
	"log/slog"

	"github.com/google/uuid"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-phoneinput/pkg/dom"
	"github.com/goliatone/go-phoneinput/pkg/intltel"
	"github.com/goliatone/go-phoneinput/pkg/page"
)

// TagName is the host element tag.
const TagName = "phone-input"

// Option customises a Widget.
type Option func(*Widget)

// WithLogger sets the widget logger. The page logger is not used.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithLibrary sets the library the script asset exports. The first widget to
// load the script on a page decides the page global; later widgets bind
// through whatever the page already defines.
func WithLibrary(lib intltel.Library) Option {
	return func(w *Widget) {
		if lib != nil {
			w.library = lib
		}
	}
}

// WithRenderer replaces the default renderer.
func WithRenderer(r *Renderer) Option {
	return func(w *Widget) {
		if r != nil {
			w.renderer = r
		}
	}
}

// WithTheme applies a go-theme selection to the markup and asset URLs.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(w *Widget) {
		w.theme = cfg
	}
}

// WithMessages replaces the validation messages. A translator set with
// WithTranslator localises them whatever the option order.
func WithMessages(messages Messages) Option {
	return func(w *Widget) {
		w.setup.messages = &messages
	}
}

// WithTranslator localises the validation messages for locale.
func WithTranslator(t Translator, locale string, onMissing MissingTranslationHandler) Option {
	return func(w *Widget) {
		w.setup.translator = t
		w.setup.locale = locale
		w.setup.onMissing = onMissing
		w.setup.localize = true
	}
}

// WithAttributes sets initial host attributes. Repeated options merge, later
// values winning. They are applied to the host chosen with WithHost.
func WithAttributes(attrs map[string]string) Option {
	return func(w *Widget) {
		if w.setup.attrs == nil {
			w.setup.attrs = make(map[string]string, len(attrs))
		}
		for name, value := range attrs {
			w.setup.attrs[name] = value
		}
	}
}

// WithHost upgrades an existing element instead of creating a new one.
func WithHost(host *dom.Element) Option {
	return func(w *Widget) {
		if host != nil {
			w.setup.host = host
		}
	}
}

// setup holds option values that New applies once every option has run.
type setup struct {
	host       *dom.Element
	attrs      map[string]string
	messages   *Messages
	translator Translator
	locale     string
	onMissing  MissingTranslationHandler
	localize   bool
}

// Widget is the phone-input custom element.
//
// All methods must run on the goroutine that drives the owning page loop.
type Widget struct {
	id       string
	host     *dom.Element
	logger   *slog.Logger
	library  intltel.Library
	renderer *Renderer
	theme    *theme.RendererConfig
	messages Messages

	setup setup

	page     *page.Page
	state    State
	instance intltel.Instance
	utilsErr error
	unlisten []func()
}

var _ page.CustomElement = (*Widget)(nil)

// New creates a detached widget.
func New(options ...Option) *Widget {
	w := &Widget{
		id:       uuid.NewString(),
		logger:   slog.Default(),
		library:  intltel.NewLibrary(),
		messages: DefaultMessages(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}

	w.host = w.setup.host
	if w.host == nil {
		w.host = dom.NewElement(TagName)
	}
	for _, name := range sortedKeys(w.setup.attrs) {
		w.host.SetAttr(name, w.setup.attrs[name])
	}
	if w.setup.messages != nil {
		w.messages = w.setup.messages.withDefaults()
	}
	if w.setup.localize {
		w.messages = w.messages.Localize(w.setup.translator, w.setup.locale, w.setup.onMissing)
	}
	w.setup = setup{}

	w.logger = w.logger.With("widget", w.id)
	return w
}

// ID identifies the widget in logs and live sessions.
func (w *Widget) ID() string {
	return w.id
}

// Element returns the host element.
func (w *Widget) Element() *dom.Element {
	return w.host
}

// State reports the lifecycle state.
func (w *Widget) State() State {
	return w.state
}

// Configuration reads the current configuration from the host attributes.
func (w *Widget) Configuration() Configuration {
	return ReadConfiguration(w.host)
}

// Field returns the visible input, or nil before the widget is rendered.
func (w *Widget) Field() *dom.Element {
	return w.display()
}

func (w *Widget) display() *dom.Element {
	return w.host.Find(dom.All(dom.ByTag("input"), dom.ByAttr("type", "tel")))
}

func (w *Widget) hidden() *dom.Element {
	return w.host.Find(dom.All(dom.ByTag("input"), dom.ByAttr("type", "hidden")))
}

func (w *Widget) label() *dom.Element {
	return w.host.Find(dom.ByTag("label"))
}

func (w *Widget) feedback() *dom.Element {
	return w.host.Find(dom.ByClass("invalid-feedback"))
}
