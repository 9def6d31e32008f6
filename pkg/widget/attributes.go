package widget

import (
	"slices"
	"strings"

	"github.com/goliatone/go-phoneinput/pkg/dom"
)

const requiredIndicator = `<span class="required-indicator">*</span>`

// SetAttribute sets a host attribute and applies observed changes.
func (w *Widget) SetAttribute(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	old, had := w.host.Attr(name)
	w.host.SetAttr(name, value)
	w.attributeChanged(name, old, had, value, true)
}

// RemoveAttribute removes a host attribute and applies observed changes.
func (w *Widget) RemoveAttribute(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	old, had := w.host.Attr(name)
	if !had {
		return
	}
	w.host.RemoveAttr(name)
	w.attributeChanged(name, old, true, "", false)
}

// attributeChanged patches the rendered markup in place. Changes before the
// library is bound are picked up by the first render or bind.
func (w *Widget) attributeChanged(name, oldValue string, hadOld bool, newValue string, hasNew bool) {
	if w.state != Ready || !slices.Contains(ObservedAttributes, name) {
		return
	}
	if hadOld == hasNew && oldValue == newValue {
		return
	}

	switch name {
	case AttrValue:
		w.SetNumber(newValue)
	case AttrDisabled:
		if input := w.display(); input != nil {
			input.ToggleAttr("disabled", w.host.HasAttr(AttrDisabled))
		}
	case AttrRequired:
		if label := w.label(); label != nil {
			w.updateRequiredIndicator(label)
		}
	case AttrLabel:
		if label := w.label(); label != nil {
			label.SetLeadingText(sanitizeText(newValue))
		}
	case AttrPlaceholder:
		if input := w.display(); input != nil {
			input.SetAttr("placeholder", sanitizeText(newValue))
		}
	default:
		w.logger.Debug("attribute change applies on next render", "attr", name)
	}
}

func (w *Widget) updateRequiredIndicator(label *dom.Element) {
	indicator := label.Find(dom.ByClass("required-indicator"))
	required := w.host.HasAttr(AttrRequired)
	switch {
	case required && indicator == nil:
		if err := label.AppendHTML(requiredIndicator); err != nil {
			w.logger.Warn("required indicator not added", "err", err)
		}
	case !required && indicator != nil:
		indicator.Remove()
	}
}
