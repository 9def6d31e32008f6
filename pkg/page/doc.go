// Package page hosts custom elements in a server-side HTML document.
//
// A Page owns a parsed document, a single-threaded event loop with an
// animation frame queue, bubbling event dispatch, focus tracking and head
// asset injection. Stylesheets and scripts are injected once per page, keyed
// by element id. Script loads additionally go through an AssetRegistry that
// records each asset outcome once per process, so two pages never fetch the
// same script twice and a failed fetch is never retried.
//
// Typical use:
//
//	p := page.New(page.WithLogger(logger))
//	_ = p.Attach(widget)
//	_ = p.Run(ctx) // runs frames and waits for script loads
package page
