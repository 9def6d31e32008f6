package page

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"github.com/goliatone/go-phoneinput/pkg/dom"
)

const tracerName = "github.com/goliatone/go-phoneinput/pkg/page"

const blankDocument = `<!DOCTYPE html><html><head></head><body></body></html>`

// Option customises a Page.
type Option func(*Page)

// WithLogger sets the logger used for asset and lifecycle reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Page) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLoader overrides the loader used to fetch script assets.
func WithLoader(loader AssetLoader) Option {
	return func(p *Page) {
		if loader != nil {
			p.loader = loader
		}
	}
}

// WithRegistry overrides the process-wide asset registry. Tests use this to
// isolate load bookkeeping.
func WithRegistry(registry *AssetRegistry) Option {
	return func(p *Page) {
		if registry != nil {
			p.registry = registry
		}
	}
}

// WithContext sets the base context for asynchronous asset loads.
func WithContext(ctx context.Context) Option {
	return func(p *Page) {
		if ctx != nil {
			p.ctx = ctx
		}
	}
}

// WithTracer overrides the tracer used around asset loads.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Page) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// Page is a host document: a parsed HTML tree plus the single-threaded event
// loop, asset bookkeeping and event dispatch that custom elements rely on.
//
// Everything except Post and Run must be called from the goroutine running the
// loop (or before the loop starts).
type Page struct {
	logger   *slog.Logger
	loader   AssetLoader
	registry *AssetRegistry
	tracer   trace.Tracer
	ctx      context.Context

	doc  *html.Node
	head *dom.Element
	body *dom.Element

	loop *loop

	markers   map[string]struct{}
	scripts   map[string]*scriptState
	globals   map[string]any
	listeners map[*html.Node]map[string][]*listenerEntry
	elements  map[*html.Node]CustomElement
	active    *dom.Element
}

// New creates an empty document.
func New(options ...Option) *Page {
	doc, err := html.Parse(strings.NewReader(blankDocument))
	if err != nil {
		panic(fmt.Sprintf("page: parse blank document: %v", err))
	}

	p := &Page{
		logger:    slog.Default(),
		loader:    NewHTTPLoader(nil),
		registry:  DefaultRegistry(),
		tracer:    otel.Tracer(tracerName),
		ctx:       context.Background(),
		doc:       doc,
		loop:      newLoop(),
		markers:   make(map[string]struct{}),
		scripts:   make(map[string]*scriptState),
		globals:   make(map[string]any),
		listeners: make(map[*html.Node]map[string][]*listenerEntry),
		elements:  make(map[*html.Node]CustomElement),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if el := dom.Wrap(c); el != nil && el.Tag() == "html" {
			p.head = el.Find(dom.ByTag("head"))
			p.body = el.Find(dom.ByTag("body"))
		}
	}
	return p
}

// Logger returns the page logger.
func (p *Page) Logger() *slog.Logger {
	return p.logger
}

// Head returns the <head> element.
func (p *Page) Head() *dom.Element {
	return p.head
}

// Body returns the <body> element.
func (p *Page) Body() *dom.Element {
	return p.body
}

// Find searches the whole document.
func (p *Page) Find(m dom.Matcher) *dom.Element {
	if el := p.head.Find(m); el != nil {
		return el
	}
	return p.body.Find(m)
}

// HTML renders the full document.
func (p *Page) HTML() string {
	var b strings.Builder
	_ = html.Render(&b, p.doc)
	return b.String()
}

// Define sets a page global, the equivalent of a script attaching a namespace
// to the window object.
func (p *Page) Define(name string, value any) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	p.globals[name] = value
}

// Global looks up a page global.
func (p *Page) Global(name string) (any, bool) {
	value, ok := p.globals[name]
	return value, ok
}
