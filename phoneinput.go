// Package phoneinput is the entry point for the phone-input widget: an
// international phone number field backed by intl-tel-input semantics, hosted
// on a headless page for server-side rendering, terminal prompts and live
// websocket sessions.
package phoneinput

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-phoneinput/pkg/openapi"
	"github.com/goliatone/go-phoneinput/pkg/page"
	"github.com/goliatone/go-phoneinput/pkg/widget"
)

// Widget aliases the custom element type.
type Widget = widget.Widget

// Configuration aliases the attribute-derived widget configuration.
type Configuration = widget.Configuration

// Messages aliases the validation texts.
type Messages = widget.Messages

// PhoneField aliases a discovered OpenAPI phone field.
type PhoneField = openapi.PhoneField

// DefaultRenderTimeout bounds RenderHTML when ctx has no deadline.
const DefaultRenderTimeout = 10 * time.Second

// NewWidget creates a detached widget.
func NewWidget(options ...widget.Option) *Widget {
	return widget.New(options...)
}

// RenderHTML renders a complete document holding one widget configured by
// attrs. Assets are referenced but never fetched; the number library is bound
// in process so the initial value is normalised.
func RenderHTML(ctx context.Context, attrs map[string]string, options ...widget.Option) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultRenderTimeout)
		defer cancel()
	}

	p := page.New(page.WithLoader(page.NopLoader), page.WithRegistry(page.NewAssetRegistry()))
	w := widget.New(append([]widget.Option{widget.WithAttributes(attrs)}, options...)...)
	if err := p.Attach(w); err != nil {
		return "", fmt.Errorf("phoneinput: attach widget: %w", err)
	}
	if err := p.Run(ctx); err != nil {
		return "", fmt.Errorf("phoneinput: render: %w", err)
	}
	return p.HTML(), nil
}

// DiscoverPhoneFields loads the OpenAPI document at src and returns the phone
// fields in its request bodies.
func DiscoverPhoneFields(ctx context.Context, src openapi.Source, options ...openapi.LoaderOption) ([]PhoneField, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("phoneinput: load %s: %w", src.Location(), err)
	}
	ops, err := NewParser().Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("phoneinput: parse %s: %w", src.Location(), err)
	}
	return openapi.Discover(ops), nil
}
