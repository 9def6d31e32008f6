package widget

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-phoneinput/pkg/dom"
	"github.com/goliatone/go-phoneinput/pkg/intltel"
	"github.com/goliatone/go-phoneinput/pkg/page"
)

// ErrLibraryUnavailable is reported when the script loaded but the page does
// not expose a usable intlTelInput global.
var ErrLibraryUnavailable = errors.New("widget: intlTelInput library not available on page")

func (w *Widget) load(urls assetURLs) {
	if w.state != Loading {
		return
	}
	p := w.page
	script := page.Asset{
		ID:     LibraryScriptID,
		URL:    urls.script,
		Global: intltel.GlobalName,
		Export: w.library,
	}
	p.LoadScript(script, func(err error) {
		if w.state != Loading {
			return
		}
		if err != nil {
			w.logger.Error("failed to load intl-tel-input", "err", err)
			return
		}
		p.LoadScript(page.Asset{ID: LibraryUtilsID, URL: urls.utils}, func(err error) {
			if w.state != Loading {
				return
			}
			w.utilsErr = err
			if err := w.bind(); err != nil {
				w.logger.Error("error initializing intl-tel-input", "err", err)
				return
			}
			w.listen()
			w.state = Ready
		})
	})
}

// bind attaches the library to the visible field. A failure leaves the
// widget loading.
func (w *Widget) bind() error {
	input := w.display()
	if input == nil {
		return intltel.ErrFieldMissing
	}
	global, _ := w.page.Global(intltel.GlobalName)
	lib, ok := global.(intltel.Library)
	if !ok {
		return ErrLibraryUnavailable
	}

	cfg := w.Configuration()
	utilsErr := w.utilsErr
	inst, err := lib.Bind(&field{widget: w, el: input}, intltel.Options{
		CountryOrder:          cfg.CountryOrder,
		InitialCountry:        cfg.InitialCountry,
		SeparateDialCode:      cfg.SeparateDialCode,
		AutoPlaceholder:       "off",
		FormatOnDisplay:       cfg.FormatOnDisplay,
		ValidationNumberTypes: nil,
		LoadUtils:             func() error { return utilsErr },
	})
	if err != nil {
		return fmt.Errorf("widget: bind: %w", err)
	}
	w.instance = inst
	w.logger.Debug("intl-tel-input initialized", "country", cfg.InitialCountry)

	if cfg.Value != "" {
		w.SetNumber(cfg.Value)
	}
	return nil
}

// field adapts the visible input to intltel.Field. Library events are queued
// on the page loop so they reach listeners after the library call returns.
type field struct {
	widget *Widget
	el     *dom.Element
}

func (f *field) Value() string { return f.el.Value() }

func (f *field) SetValue(value string) { f.el.SetValue(value) }

func (f *field) Notify(event string) {
	p := f.widget.page
	if p == nil {
		return
	}
	el := f.el
	p.Post(func() { p.Fire(el, event) })
}
