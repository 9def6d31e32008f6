package template

import (
	"io"
)

// TemplateRenderer is the engine seam the widget renderer depends on. It is a
// subset of the github.com/goliatone/go-template engine, so a go-template
// engine carrying theme partials satisfies it directly.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
