// Package widget implements the phone-input custom element: an international
// phone field that renders its own markup, binds an intltel.Library instance
// to the visible input, mirrors the canonical number into a hidden form field
// and reports changes, blurs and validation outcomes as bubbling page events.
//
// A Widget is attached to a page.Page. Configuration is read from the host
// element's attributes every time it is needed, so changing an attribute is
// the only way to reconfigure a widget. Observed attributes are patched into
// the rendered markup after the library is bound; the markup is never
// re-rendered and the library is never re-bound.
//
//	w := widget.New(widget.WithAttributes(map[string]string{
//		"name":            "mobile",
//		"label":           "Mobile",
//		"initial-country": "us",
//		"required":        "",
//	}))
//	p := page.New()
//	_ = p.Attach(w)
//	_ = p.Run(ctx)
//	ok := w.Validate()
package widget
