package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-phoneinput/pkg/dom"
)

// ErrAssetLoad is matched by every error produced by a failed asset load.
var ErrAssetLoad = errors.New("page: asset load failed")

// LoadError reports the asset that failed to load.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("page: load asset %q failed", e.ID)
	}
	return fmt.Sprintf("page: load asset %q: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrAssetLoad }

// Asset describes an external script the page loads once. When the load
// succeeds and Global is set, Export is defined as that page global.
type Asset struct {
	ID     string
	URL    string
	Global string
	Export any
}

// AssetLoader fetches (or otherwise resolves) a script asset.
type AssetLoader interface {
	Load(ctx context.Context, asset Asset) error
}

// LoaderFunc adapts a function to AssetLoader.
type LoaderFunc func(ctx context.Context, asset Asset) error

func (fn LoaderFunc) Load(ctx context.Context, asset Asset) error {
	return fn(ctx, asset)
}

// NopLoader resolves every asset immediately. Useful when the assets are
// bundled with the host and need no fetch.
var NopLoader AssetLoader = LoaderFunc(func(context.Context, Asset) error { return nil })

// HTTPLoader fetches asset URLs and treats any non-2xx response as a failure.
type HTTPLoader struct {
	Client *http.Client
}

// NewHTTPLoader builds a loader using client, or http.DefaultClient when nil.
func NewHTTPLoader(client *http.Client) *HTTPLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{Client: client}
}

func (l *HTTPLoader) Load(ctx context.Context, asset Asset) error {
	if strings.TrimSpace(asset.URL) == "" {
		return fmt.Errorf("page: asset %q has no url", asset.ID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, nil)
	if err != nil {
		return fmt.Errorf("page: build request: %w", err)
	}
	res, err := l.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("page: fetch %s: %s", asset.URL, http.StatusText(res.StatusCode))
	}
	return nil
}

// AssetRegistry records the outcome of each asset load process-wide. Each
// identifier is loaded at most once; the first outcome, success or failure,
// is final. Concurrent requests for the same identifier share one load.
type AssetRegistry struct {
	group   singleflight.Group
	mu      sync.RWMutex
	results map[string]error
}

// NewAssetRegistry creates an empty registry.
func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{results: make(map[string]error)}
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *AssetRegistry
)

// DefaultRegistry returns the process-wide registry shared by pages that do
// not configure their own.
func DefaultRegistry() *AssetRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewAssetRegistry()
	})
	return defaultRegistry
}

// Result reports whether id has been loaded and its outcome.
func (r *AssetRegistry) Result(id string) (done bool, err error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	err, done = r.results[id]
	return done, err
}

// Load resolves asset through loader unless an outcome is already recorded.
// Context cancellation is returned to the caller without being recorded, so a
// later caller may still complete the load.
func (r *AssetRegistry) Load(ctx context.Context, asset Asset, loader AssetLoader) error {
	id := strings.TrimSpace(asset.ID)
	if id == "" {
		return fmt.Errorf("page: asset id is required")
	}
	if done, err := r.Result(id); done {
		return err
	}
	if loader == nil {
		loader = NopLoader
	}

	_, err, _ := r.group.Do(id, func() (any, error) {
		if done, err := r.Result(id); done {
			return nil, err
		}
		err := loader.Load(ctx, asset)
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, err
		}
		if err != nil {
			err = &LoadError{ID: id, Err: err}
		}
		r.mu.Lock()
		r.results[id] = err
		r.mu.Unlock()
		return nil, err
	})
	return err
}

// HasMarker reports whether an element with the given id was injected into the
// head.
func (p *Page) HasMarker(id string) bool {
	if _, ok := p.markers[id]; ok {
		return true
	}
	return p.head.Find(dom.ByID(id)) != nil
}

// EnsureStylesheet appends <link rel="stylesheet"> to the head unless an
// element with id already exists. It reports whether anything was injected.
func (p *Page) EnsureStylesheet(id, href string) bool {
	if id == "" || p.HasMarker(id) {
		return false
	}
	link := dom.NewElement("link")
	link.SetAttr("id", id)
	link.SetAttr("rel", "stylesheet")
	link.SetAttr("href", href)
	p.head.AppendChild(link)
	p.markers[id] = struct{}{}
	return true
}

// EnsureStyle appends an inline <style> block unless id already exists.
func (p *Page) EnsureStyle(id, css string) bool {
	if id == "" || p.HasMarker(id) {
		return false
	}
	style := dom.NewElement("style")
	style.SetAttr("id", id)
	style.SetText(css)
	p.head.AppendChild(style)
	p.markers[id] = struct{}{}
	return true
}

type scriptState struct {
	done    bool
	err     error
	waiters []func(error)
}

// LoadScript injects the script tag once per page and resolves done on the
// loop once the asset is available. When asset.Global is already defined the
// script is not loaded at all. A failed load is logged once per page and every
// waiter receives the same error.
func (p *Page) LoadScript(asset Asset, done func(error)) {
	if done == nil {
		done = func(error) {}
	}
	if asset.Global != "" {
		if _, ok := p.globals[asset.Global]; ok {
			p.Post(func() { done(nil) })
			return
		}
	}

	state, ok := p.scripts[asset.ID]
	if ok {
		if state.done {
			err := state.err
			p.Post(func() { done(err) })
			return
		}
		state.waiters = append(state.waiters, done)
		return
	}

	state = &scriptState{waiters: []func(error){done}}
	p.scripts[asset.ID] = state

	if !p.HasMarker(asset.ID) {
		script := dom.NewElement("script")
		script.SetAttr("id", asset.ID)
		script.SetAttr("src", asset.URL)
		p.head.AppendChild(script)
		p.markers[asset.ID] = struct{}{}
	}

	registry, loader, ctx := p.registry, p.loader, p.ctx
	p.loop.spawn(func() func() {
		ctx, span := p.tracer.Start(ctx, "page.load_script")
		span.SetAttributes(attribute.String("asset.id", asset.ID), attribute.String("asset.url", asset.URL))
		err := registry.Load(ctx, asset, loader)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		return func() { p.resolveScript(asset, state, err) }
	})
}

func (p *Page) resolveScript(asset Asset, state *scriptState, err error) {
	state.done = true
	state.err = err
	if err != nil {
		p.logger.Error("script load failed", "asset", asset.ID, "url", asset.URL, "err", err)
	} else if asset.Global != "" && asset.Export != nil {
		if _, exists := p.globals[asset.Global]; !exists {
			p.globals[asset.Global] = asset.Export
		}
	}

	waiters := state.waiters
	state.waiters = nil
	for _, waiter := range waiters {
		waiter(err)
	}
}
