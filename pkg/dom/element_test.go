package dom

import (
	"strings"
	"testing"
)

func mustFragment(t *testing.T, markup string) *Element {
	t.Helper()
	root := NewElement("div")
	if err := root.SetInnerHTML(markup); err != nil {
		t.Fatalf("set inner html: %v", err)
	}
	return root
}

func TestElement_AttributesAndClasses(t *testing.T) {
	root := mustFragment(t, `<input type="tel" class="a b" disabled>`)
	input := root.Find(ByAttr("type", "tel"))
	if input == nil {
		t.Fatalf("expected tel input")
	}
	if !input.HasAttr("disabled") {
		t.Fatalf("expected disabled attribute to be parsed")
	}

	input.ToggleAttr("disabled", false)
	if input.HasAttr("disabled") {
		t.Fatalf("expected disabled removed")
	}
	input.ToggleAttr("disabled", true)
	if got, _ := input.Attr("disabled"); got != "" || !input.HasAttr("disabled") {
		t.Fatalf("expected empty boolean attribute, got %q", got)
	}

	input.AddClass("is-invalid")
	input.AddClass("is-invalid")
	if got := input.GetAttr("class"); got != "a b is-invalid" {
		t.Fatalf("unexpected class list %q", got)
	}
	input.RemoveClass("a")
	input.RemoveClass("b")
	input.RemoveClass("is-invalid")
	if input.HasAttr("class") {
		t.Fatalf("expected class attribute dropped once empty")
	}
}

func TestElement_SetLeadingTextPreservesSiblings(t *testing.T) {
	root := mustFragment(t, `<label for="phone">Phone<span class="required-indicator">*</span></label>`)
	label := root.Find(ByTag("label"))

	label.SetLeadingText("Mobile")
	if got := label.Text(); got != "Mobile*" {
		t.Fatalf("unexpected label text %q", got)
	}
	if label.Find(ByClass("required-indicator")) == nil {
		t.Fatalf("expected indicator kept")
	}

	empty := mustFragment(t, `<label><span>*</span></label>`).Find(ByTag("label"))
	empty.SetLeadingText("Phone")
	if !strings.HasPrefix(empty.InnerHTML(), "Phone<span>") {
		t.Fatalf("expected text inserted before first child, got %q", empty.InnerHTML())
	}
}

func TestElement_FindAllAndRemove(t *testing.T) {
	root := mustFragment(t, `<div><input type="tel"><input type="hidden" name="phone"></div>`)
	inputs := root.FindAll(ByTag("input"))
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	hidden := root.Find(All(ByTag("input"), ByAttr("type", "hidden")))
	if !hidden.Same(inputs[1]) {
		t.Fatalf("expected hidden input to be second match")
	}
	if !root.Contains(hidden) {
		t.Fatalf("expected root to contain hidden input")
	}
	hidden.Remove()
	if root.Contains(hidden) {
		t.Fatalf("expected hidden input detached")
	}
	if strings.Contains(root.InnerHTML(), "hidden") {
		t.Fatalf("unexpected markup after removal: %s", root.InnerHTML())
	}
}

func TestElement_SetTextEscapesOnRender(t *testing.T) {
	el := NewElement("div")
	el.SetText("<b>x</b>")
	if got := el.OuterHTML(); got != "<div>&lt;b&gt;x&lt;/b&gt;</div>" {
		t.Fatalf("unexpected render %q", got)
	}
	el.SetText("")
	if el.Text() != "" {
		t.Fatalf("expected empty text")
	}
}
