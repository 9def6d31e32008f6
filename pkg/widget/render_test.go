package widget

import (
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-phoneinput/pkg/dom"
	"github.com/goliatone/go-phoneinput/pkg/render/template/gotemplate"
)

func renderInto(t *testing.T, r *Renderer, cfg Configuration) *dom.Element {
	t.Helper()
	markup, err := r.Render(cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	host := dom.NewElement(TagName)
	if err := host.SetInnerHTML(markup); err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return host
}

func TestRenderer_Markup(t *testing.T) {
	r, err := NewRenderer(WithRendererLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	host := renderInto(t, r, Configuration{
		Name:        "mobile",
		Value:       "+14155552671",
		Label:       "Mobile & <em>cell</em>",
		Placeholder: "555 0100",
		Required:    true,
		Disabled:    true,
	})

	group := host.Find(dom.ByClass("form-group"))
	if group == nil {
		t.Fatalf("missing form group: %s", host.InnerHTML())
	}
	label := host.Find(dom.ByTag("label"))
	if label == nil || label.GetAttr("for") != "mobile" {
		t.Fatalf("unexpected label: %s", host.InnerHTML())
	}
	if got := label.Text(); got != "Mobile & cell*" {
		t.Fatalf("expected sanitised label with indicator, got %q", got)
	}

	visible := host.Find(dom.All(dom.ByTag("input"), dom.ByAttr("type", "tel")))
	wantAttrs := map[string]string{
		"id":           "mobile",
		"name":         "mobile-display",
		"value":        "+14155552671",
		"placeholder":  "555 0100",
		"autocomplete": "tel",
	}
	for name, want := range wantAttrs {
		if got := visible.GetAttr(name); got != want {
			t.Fatalf("visible %s: expected %q, got %q", name, want, got)
		}
	}
	if !visible.HasAttr("disabled") || !visible.HasAttr("required") {
		t.Fatalf("expected disabled and required flags: %s", visible.OuterHTML())
	}

	hidden := host.Find(dom.All(dom.ByTag("input"), dom.ByAttr("type", "hidden")))
	if hidden.GetAttr("name") != "mobile" || hidden.Value() != "+14155552671" {
		t.Fatalf("unexpected hidden field: %s", hidden.OuterHTML())
	}
	if host.Find(dom.ByClass("invalid-feedback")) == nil {
		t.Fatalf("missing feedback slot")
	}
}

func TestRenderer_NoLabelWhenEmpty(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	host := renderInto(t, r, Configuration{Name: "phone"})
	if host.Find(dom.ByTag("label")) != nil {
		t.Fatalf("expected no label: %s", host.InnerHTML())
	}
	visible := host.Find(dom.ByAttr("type", "tel"))
	if visible.HasAttr("disabled") || visible.HasAttr("required") {
		t.Fatalf("unexpected flags: %s", visible.OuterHTML())
	}
}

func TestRenderer_EscapesAttributeValues(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	markup, err := r.Render(Configuration{Name: "phone", Value: `"><script>alert(1)</script>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(markup, "<script>") {
		t.Fatalf("expected value escaped, got %s", markup)
	}
}

func TestRenderer_ThemePartialOverride(t *testing.T) {
	files := fstest.MapFS{
		"themes/acme/phone.tmpl": {Data: []byte(`<div class="acme-phone" data-theme="{{ theme }}"><input type="tel" id="{{ name }}"><input type="hidden" name="{{ name }}"><div class="invalid-feedback"></div></div>`)},
	}
	engine, err := gotemplate.New(files)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	cfg := &theme.RendererConfig{
		Theme:    "acme",
		Partials: map[string]string{ThemePartial: "themes/acme/phone.tmpl"},
	}
	r, err := NewRenderer(WithTemplateRenderer(engine), WithThemeConfig(cfg))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	host := renderInto(t, r, Configuration{Name: "phone"})
	wrapper := host.Find(dom.ByClass("acme-phone"))
	if wrapper == nil || wrapper.GetAttr("data-theme") != "acme" {
		t.Fatalf("expected theme partial used: %s", host.InnerHTML())
	}
}

func TestRenderer_BrokenPartialFallsBack(t *testing.T) {
	engine, err := gotemplate.New(TemplatesFS())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	cfg := &theme.RendererConfig{Partials: map[string]string{ThemePartial: "themes/missing.tmpl"}}
	r, err := NewRenderer(WithTemplateRenderer(engine), WithThemeConfig(cfg), WithRendererLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	host := renderInto(t, r, Configuration{Name: "phone"})
	if host.Find(dom.ByClass("form-group")) == nil {
		t.Fatalf("expected built-in markup: %s", host.InnerHTML())
	}
}

func TestWidget_ThemeAssetURLs(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme: "acme",
		AssetURL: func(key string) string {
			if key == AssetKeyStylesheet {
				return "/themes/acme/intl.css"
			}
			return ""
		},
	}
	p := newTestPage(nil)
	w := New(WithLogger(quietLogger()), WithTheme(cfg))
	if err := p.Attach(w); err != nil {
		t.Fatalf("attach: %v", err)
	}
	runPage(t, p)

	link := p.Head().Find(dom.ByID(LibraryStylesheetID))
	if link == nil || link.GetAttr("href") != "/themes/acme/intl.css" {
		t.Fatalf("expected themed stylesheet url: %s", p.Head().InnerHTML())
	}
	script := p.Head().Find(dom.ByID(LibraryScriptID))
	if script == nil || script.GetAttr("src") != LibraryScriptURL {
		t.Fatalf("expected default script url: %s", p.Head().InnerHTML())
	}
	if style := p.Head().Find(dom.ByID(WidgetStyleID)); style == nil || !strings.Contains(style.Text(), "phone-input") {
		t.Fatalf("expected widget stylesheet injected")
	}
}
