package phonedata

import "net/http"

// Component bundles the phone data handlers, their configuration and routing
// helpers.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// CountriesHandler returns the country search handler.
func (c *Component) CountriesHandler() http.Handler {
	if c == nil {
		return CountriesHandler()
	}
	return CountriesHandlerWithOptions(c.opts)
}

// ValidateHandler returns the validation handler.
func (c *Component) ValidateHandler() http.Handler {
	if c == nil {
		return ValidateHandler()
	}
	return ValidateHandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (Routes, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
