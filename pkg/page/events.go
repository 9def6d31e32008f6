package page

import (
	"golang.org/x/net/html"

	"github.com/goliatone/go-phoneinput/pkg/dom"
)

// Event is dispatched through the document tree. Listeners on the target run
// first, then (when Bubbles is set) listeners on each ancestor up to the
// document.
type Event struct {
	Type          string
	Detail        any
	Bubbles       bool
	Target        *dom.Element
	CurrentTarget *dom.Element

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles a dispatched event.
type Listener func(*Event)

type listenerEntry struct {
	fn Listener
}

// AddEventListener registers fn for typ on target, or on the document when
// target is nil. The returned function removes the registration.
func (p *Page) AddEventListener(target *dom.Element, typ string, fn Listener) func() {
	if fn == nil || typ == "" {
		return func() {}
	}
	key := p.doc
	if target != nil {
		key = target.Node()
	}
	byType, ok := p.listeners[key]
	if !ok {
		byType = make(map[string][]*listenerEntry)
		p.listeners[key] = byType
	}
	entry := &listenerEntry{fn: fn}
	byType[typ] = append(byType[typ], entry)

	return func() {
		entries := p.listeners[key][typ]
		for i, candidate := range entries {
			if candidate == entry {
				p.listeners[key][typ] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
		if len(p.listeners[key][typ]) == 0 {
			delete(p.listeners[key], typ)
		}
		if len(p.listeners[key]) == 0 {
			delete(p.listeners, key)
		}
	}
}

// Dispatch delivers ev to target and, when it bubbles, to its ancestors.
func (p *Page) Dispatch(target *dom.Element, ev *Event) {
	if ev == nil || target == nil {
		return
	}
	ev.Target = target
	for n := target.Node(); n != nil; n = n.Parent {
		ev.CurrentTarget = dom.Wrap(n)
		p.invoke(n, ev)
		if ev.stopped || !ev.Bubbles {
			return
		}
	}
}

// Fire dispatches a non-bubbling event of typ with no detail, the way the
// browser delivers input, keyup or change to a field.
func (p *Page) Fire(target *dom.Element, typ string) {
	p.Dispatch(target, &Event{Type: typ})
}

func (p *Page) invoke(n *html.Node, ev *Event) {
	entries := p.listeners[n][ev.Type]
	if len(entries) == 0 {
		return
	}
	snapshot := append([]*listenerEntry(nil), entries...)
	for _, entry := range snapshot {
		entry.fn(ev)
	}
}
