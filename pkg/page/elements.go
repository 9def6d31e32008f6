package page

import (
	"fmt"

	"github.com/goliatone/go-phoneinput/pkg/dom"
)

// CustomElement is a component that owns a host element and reacts to being
// inserted into and removed from the document.
type CustomElement interface {
	Element() *dom.Element
	Connected(p *Page)
	Disconnected()
}

// Attach appends the element to the body and runs its connected hook.
func (p *Page) Attach(ce CustomElement) error {
	return p.AttachTo(p.body, ce)
}

// AttachTo appends the element under parent and runs its connected hook.
func (p *Page) AttachTo(parent *dom.Element, ce CustomElement) error {
	if ce == nil || ce.Element() == nil {
		return fmt.Errorf("page: custom element is required")
	}
	if parent == nil {
		parent = p.body
	}
	host := ce.Element()
	if _, exists := p.elements[host.Node()]; exists {
		return fmt.Errorf("page: element <%s> already attached", host.Tag())
	}
	parent.AppendChild(host)
	p.elements[host.Node()] = ce
	ce.Connected(p)
	return nil
}

// Detach removes the element from the document and runs its disconnected
// hook. Detaching an element that is not attached is a no-op.
func (p *Page) Detach(ce CustomElement) {
	if ce == nil || ce.Element() == nil {
		return
	}
	host := ce.Element()
	if _, exists := p.elements[host.Node()]; !exists {
		return
	}
	delete(p.elements, host.Node())
	if p.active != nil && host.Contains(p.active) {
		p.active = nil
	}
	host.Remove()
	ce.Disconnected()
}

// ActiveElement returns the focused element, if any.
func (p *Page) ActiveElement() *dom.Element {
	return p.active
}

// Focus moves focus to el, firing blur on the previously focused element and
// focus on el.
func (p *Page) Focus(el *dom.Element) {
	if el == nil || el.Same(p.active) {
		return
	}
	prev := p.active
	p.active = el
	if prev != nil {
		p.Fire(prev, "blur")
	}
	p.Fire(el, "focus")
}

// Blur clears focus, firing blur on the element that had it.
func (p *Page) Blur() {
	prev := p.active
	if prev == nil {
		return
	}
	p.active = nil
	p.Fire(prev, "blur")
}
