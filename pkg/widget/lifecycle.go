package widget

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-phoneinput/pkg/page"
)

// Connected renders the widget into its host and schedules the library load
// for the next animation frame.
func (w *Widget) Connected(p *page.Page) {
	switch w.state {
	case Destroyed:
		w.logger.Warn("reconnect ignored, widget was destroyed")
		return
	case Loading, Ready:
		return
	}
	if p == nil {
		return
	}
	w.page = p

	urls := resolveAssetURLs(themeAssetResolver(w.theme))
	p.EnsureStylesheet(LibraryStylesheetID, urls.stylesheet)
	p.EnsureStyle(WidgetStyleID, Stylesheet())

	cfg := w.Configuration()
	if err := cfg.Check(); err != nil {
		w.logger.Warn("configuration problems", "err", err)
	}
	if err := w.render(cfg); err != nil {
		w.logger.Error("render failed", "err", err)
	}

	w.state = Loading
	p.RequestAnimationFrame(func() { w.load(urls) })
}

// Disconnected destroys the bound instance and removes field listeners. A
// library load still in flight is ignored when it completes.
func (w *Widget) Disconnected() {
	if w.state == Destroyed {
		return
	}
	if w.instance != nil {
		w.instance.Destroy()
		w.instance = nil
	}
	for _, off := range w.unlisten {
		off()
	}
	w.unlisten = nil
	w.state = Destroyed
	w.logger.Debug("widget destroyed")
}

func (w *Widget) render(cfg Configuration) error {
	if w.renderer == nil {
		r, err := NewRenderer(WithThemeConfig(w.theme), WithRendererLogger(w.logger))
		if err != nil {
			return err
		}
		w.renderer = r
	}
	markup, err := w.renderer.Render(cfg)
	if err != nil {
		return err
	}
	return w.host.SetInnerHTML(markup)
}

func themeAssetResolver(cfg *theme.RendererConfig) func(string) string {
	if cfg == nil {
		return nil
	}
	return cfg.AssetURL
}
