package gotemplate

import (
	"errors"
	"fmt"
	"io/fs"

	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-phoneinput/pkg/render/template"
)

// Extension is appended to template names given without it.
const Extension = ".tmpl"

var _ template.TemplateRenderer = (*gotemplate.Engine)(nil)

// New builds a go-template engine reading templates from files. options are
// applied after the defaults, so hosts can add filters, globals or hooks.
func New(files fs.FS, options ...gotemplate.Option) (*gotemplate.Engine, error) {
	if files == nil {
		return nil, errors.New("gotemplate: template fs is required")
	}
	opts := append([]gotemplate.Option{
		gotemplate.WithFS(files),
		gotemplate.WithExtension(Extension),
	}, options...)
	engine, err := gotemplate.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	return engine, nil
}
