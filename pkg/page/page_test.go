package page

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-phoneinput/pkg/dom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runPage(t *testing.T, p *Page) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("run page: %v", err)
	}
}

func TestRun_FramesRunAfterTasks(t *testing.T) {
	p := New(WithLogger(quietLogger()), WithLoader(NopLoader), WithRegistry(NewAssetRegistry()))

	var order []string
	p.RequestAnimationFrame(func() {
		order = append(order, "frame-1")
		p.RequestAnimationFrame(func() { order = append(order, "frame-2") })
		p.Post(func() { order = append(order, "task-from-frame") })
	})
	p.Post(func() { order = append(order, "task") })

	runPage(t, p)

	want := []string{"task", "frame-1", "task-from-frame", "frame-2"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if p.Busy() {
		t.Fatalf("expected idle page after run")
	}
}

func TestEnsureStylesheet_InjectsOnce(t *testing.T) {
	p := New(WithLogger(quietLogger()))

	if !p.EnsureStylesheet("intl-tel-input-styles", "https://cdn.example/intl.css") {
		t.Fatalf("expected first call to inject")
	}
	if p.EnsureStylesheet("intl-tel-input-styles", "https://cdn.example/other.css") {
		t.Fatalf("expected second call to be a no-op")
	}
	if !p.EnsureStyle("phone-input-styles", "phone-input{display:block}") {
		t.Fatalf("expected inline style injected")
	}
	if p.EnsureStyle("phone-input-styles", "x") {
		t.Fatalf("expected inline style deduplicated")
	}

	links := p.Head().FindAll(dom.ByTag("link"))
	if len(links) != 1 || links[0].GetAttr("href") != "https://cdn.example/intl.css" {
		t.Fatalf("unexpected links: %s", p.Head().InnerHTML())
	}
	if got := p.Head().Find(dom.ByID("phone-input-styles")).Text(); got != "phone-input{display:block}" {
		t.Fatalf("unexpected style text %q", got)
	}
}

func TestLoadScript_OncePerPageAndDefinesGlobal(t *testing.T) {
	var calls atomic.Int32
	loader := LoaderFunc(func(context.Context, Asset) error {
		calls.Add(1)
		return nil
	})
	p := New(WithLogger(quietLogger()), WithLoader(loader), WithRegistry(NewAssetRegistry()))

	asset := Asset{ID: "intl-tel-input-script", URL: "https://cdn.example/intl.js", Global: "intlTelInput", Export: "lib"}
	var results []error
	p.LoadScript(asset, func(err error) { results = append(results, err) })
	p.LoadScript(asset, func(err error) { results = append(results, err) })

	runPage(t, p)

	if calls.Load() != 1 {
		t.Fatalf("expected one fetch, got %d", calls.Load())
	}
	if len(results) != 2 || results[0] != nil || results[1] != nil {
		t.Fatalf("unexpected results: %v", results)
	}
	if got, ok := p.Global("intlTelInput"); !ok || got != "lib" {
		t.Fatalf("expected global defined, got %v (%v)", got, ok)
	}
	if scripts := p.Head().FindAll(dom.ByTag("script")); len(scripts) != 1 {
		t.Fatalf("expected single script tag, got %d", len(scripts))
	}

	// Once the global exists further requests resolve without the registry.
	resolved := false
	p.LoadScript(asset, func(err error) { resolved = err == nil })
	runPage(t, p)
	if !resolved || calls.Load() != 1 {
		t.Fatalf("expected cached resolution, resolved=%v calls=%d", resolved, calls.Load())
	}
}

func TestAssetRegistry_SharedAcrossPagesAndFailureIsFinal(t *testing.T) {
	registry := NewAssetRegistry()
	var calls atomic.Int32
	loader := LoaderFunc(func(context.Context, Asset) error {
		calls.Add(1)
		return errors.New("boom")
	})

	asset := Asset{ID: "intl-tel-input-script", URL: "https://cdn.example/intl.js", Global: "intlTelInput", Export: "lib"}
	for i := 0; i < 2; i++ {
		p := New(WithLogger(quietLogger()), WithLoader(loader), WithRegistry(registry))
		var got error
		p.LoadScript(asset, func(err error) { got = err })
		runPage(t, p)

		if !errors.Is(got, ErrAssetLoad) {
			t.Fatalf("page %d: expected ErrAssetLoad, got %v", i, got)
		}
		if _, ok := p.Global("intlTelInput"); ok {
			t.Fatalf("page %d: global must stay undefined after failure", i)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt across pages, got %d", calls.Load())
	}
	done, err := registry.Result("intl-tel-input-script")
	if !done || err == nil {
		t.Fatalf("expected recorded failure, done=%v err=%v", done, err)
	}
}

func TestAssetRegistry_CancellationIsNotRecorded(t *testing.T) {
	registry := NewAssetRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := LoaderFunc(func(ctx context.Context, _ Asset) error { return ctx.Err() })
	if err := registry.Load(ctx, Asset{ID: "a"}, loader); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if done, _ := registry.Result("a"); done {
		t.Fatalf("cancellation must not be recorded")
	}
	if err := registry.Load(context.Background(), Asset{ID: "a"}, NopLoader); err != nil {
		t.Fatalf("expected later load to succeed, got %v", err)
	}
}

func TestHTTPLoader_StatusHandling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.js") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("window.intlTelInput = function(){}"))
	}))
	defer srv.Close()

	loader := NewHTTPLoader(srv.Client())
	if err := loader.Load(context.Background(), Asset{ID: "ok", URL: srv.URL + "/intl.js"}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := loader.Load(context.Background(), Asset{ID: "missing", URL: srv.URL + "/missing.js"}); err == nil {
		t.Fatalf("expected 404 to fail")
	}
}

func TestDispatch_BubblesToDocument(t *testing.T) {
	p := New(WithLogger(quietLogger()))
	host := dom.NewElement("phone-input")
	field := dom.NewElement("input")
	host.AppendChild(field)
	p.Body().AppendChild(host)

	var seen []string
	p.AddEventListener(field, "phone-change", func(ev *Event) { seen = append(seen, "field") })
	remove := p.AddEventListener(host, "phone-change", func(ev *Event) { seen = append(seen, "host") })
	p.AddEventListener(nil, "phone-change", func(ev *Event) {
		seen = append(seen, "document")
		if !ev.Target.Same(field) {
			t.Errorf("expected target to be the field")
		}
	})

	p.Dispatch(field, &Event{Type: "phone-change", Bubbles: true})
	remove()
	p.Dispatch(field, &Event{Type: "phone-change", Bubbles: true})
	p.Dispatch(field, &Event{Type: "phone-change"})

	want := []string{"field", "host", "document", "field", "document", "field"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("unexpected delivery (-want +got):\n%s", diff)
	}
}

type stubElement struct {
	host         *dom.Element
	connected    int
	disconnected int
}

func (s *stubElement) Element() *dom.Element { return s.host }
func (s *stubElement) Connected(*Page)       { s.connected++ }
func (s *stubElement) Disconnected()         { s.disconnected++ }

func TestAttachDetachAndFocus(t *testing.T) {
	p := New(WithLogger(quietLogger()))
	ce := &stubElement{host: dom.NewElement("phone-input")}
	field := dom.NewElement("input")
	ce.host.AppendChild(field)

	if err := p.Attach(ce); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := p.Attach(ce); err == nil {
		t.Fatalf("expected duplicate attach to fail")
	}

	blurred := 0
	p.AddEventListener(field, "blur", func(*Event) { blurred++ })
	p.Focus(field)
	if !p.ActiveElement().Same(field) {
		t.Fatalf("expected field focused")
	}
	p.Focus(p.Body())
	if blurred != 1 {
		t.Fatalf("expected blur when focus moves, got %d", blurred)
	}

	p.Focus(field)
	p.Detach(ce)
	p.Detach(ce)
	if ce.connected != 1 || ce.disconnected != 1 {
		t.Fatalf("unexpected hooks: connected=%d disconnected=%d", ce.connected, ce.disconnected)
	}
	if p.ActiveElement() != nil {
		t.Fatalf("expected focus cleared on detach")
	}
	if strings.Contains(p.HTML(), "phone-input") {
		t.Fatalf("expected host removed from document")
	}
}
