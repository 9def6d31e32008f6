package phonedata

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the patterns registered on a mux.
type Routes struct {
	Countries string
	Validate  string
}

// MountPaths returns the full mount paths for the component routes under
// basePath.
func MountPaths(basePath string, fns ...OptionFn) Routes {
	opts := NewOptions(fns...)
	return Routes{
		Countries: mountPath(basePath, opts.CountriesPath),
		Validate:  mountPath(basePath, opts.ValidatePath),
	}
}

// RegisterRoutes registers both handlers under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers both handlers under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("phonedata: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	routes := Routes{
		Countries: mountPath(basePath, opts.CountriesPath),
		Validate:  mountPath(basePath, opts.ValidatePath),
	}
	if routes.Countries == routes.Validate {
		return Routes{}, fmt.Errorf("phonedata: countries and validate share path %q", routes.Countries)
	}
	mux.Handle(routes.Countries, CountriesHandlerWithOptions(opts))
	mux.Handle(routes.Validate, ValidateHandlerWithOptions(opts))
	return routes, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
