package phoneinput

import (
	internalLoader "github.com/goliatone/go-phoneinput/internal/openapi/loader"
	internalParser "github.com/goliatone/go-phoneinput/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-phoneinput/pkg/openapi"
)

// NewLoader constructs an OpenAPI loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs the kin-openapi backed parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
