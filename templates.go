package phoneinput

import (
	"io/fs"

	"github.com/goliatone/go-phoneinput/pkg/widget"
)

// EmbeddedTemplates exposes the built-in widget template so callers can reuse
// or extend it in their own engine.
func EmbeddedTemplates() fs.FS {
	return widget.TemplatesFS()
}

// AssetsFS exposes the widget stylesheet for serving as a static file.
//
// Typical mount:
//
//	mux.Handle("/phone-input/",
//	  http.StripPrefix("/phone-input/",
//	    http.FileServerFS(phoneinput.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return widget.AssetsFS()
}
