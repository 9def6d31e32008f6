// Package template defines the template engine contract used to render widget
// markup. The gotemplate subpackage builds the default go-template engine.
package template
