package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a thin handle over an element node in an x/net/html tree. The
// handle carries no state of its own, so two handles wrapping the same node are
// interchangeable and compare equal through Same.
type Element struct {
	node *html.Node
}

// Wrap returns an Element for n, or nil when n is not an element node.
func Wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{node: n}
}

// NewElement creates a detached element with the provided tag name.
func NewElement(tag string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &Element{node: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

// Node exposes the underlying node.
func (e *Element) Node() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	if e == nil {
		return ""
	}
	return e.node.Data
}

// Same reports whether both handles point at the same node.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return e == nil && other == nil
	}
	return e.node == other.node
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// GetAttr returns the attribute value or "" when absent.
func (e *Element) GetAttr(name string) string {
	value, _ := e.Attr(name)
	return value
}

// HasAttr reports attribute presence regardless of value.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr adds or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	if e == nil || name == "" {
		return
	}
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr drops an attribute when present.
func (e *Element) RemoveAttr(name string) {
	if e == nil {
		return
	}
	out := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		out = append(out, attr)
	}
	e.node.Attr = out
}

// ToggleAttr sets a boolean attribute when on is true and removes it otherwise.
func (e *Element) ToggleAttr(name string, on bool) {
	if on {
		if !e.HasAttr(name) {
			e.SetAttr(name, "")
		}
		return
	}
	e.RemoveAttr(name)
}

// Attributes returns a copy of the attribute list in document order.
func (e *Element) Attributes() []html.Attribute {
	if e == nil || len(e.node.Attr) == 0 {
		return nil
	}
	return append([]html.Attribute(nil), e.node.Attr...)
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.GetAttr("id")
}

// Value returns the value attribute. The tree does not separate the value
// property from the attribute, so both read and write the same slot.
func (e *Element) Value() string {
	return e.GetAttr("value")
}

// SetValue writes the value attribute.
func (e *Element) SetValue(value string) {
	e.SetAttr("value", value)
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	return strings.Fields(e.GetAttr("class"))
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, class := range e.Classes() {
		if class == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list when missing.
func (e *Element) AddClass(name string) {
	name = strings.TrimSpace(name)
	if e == nil || name == "" || e.HasClass(name) {
		return
	}
	e.SetAttr("class", strings.TrimSpace(strings.Join(append(e.Classes(), name), " ")))
}

// RemoveClass drops name from the class list. An emptied list removes the
// attribute.
func (e *Element) RemoveClass(name string) {
	if e == nil || !e.HasClass(name) {
		return
	}
	classes := e.Classes()
	out := classes[:0]
	for _, class := range classes {
		if class != name {
			out = append(out, class)
		}
	}
	if len(out) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(out, " "))
}

// Text returns the concatenated text of all descendant text nodes.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	collectText(e.node, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			collectText(c, b)
		}
	}
}

// SetText replaces every child with a single text node. An empty string leaves
// the element without children.
func (e *Element) SetText(text string) {
	if e == nil {
		return
	}
	e.RemoveChildren()
	if text == "" {
		return
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetLeadingText replaces the data of the first child when it is a text node,
// or inserts a text node before the first child otherwise. Sibling elements are
// left untouched.
func (e *Element) SetLeadingText(text string) {
	if e == nil {
		return
	}
	first := e.node.FirstChild
	if first != nil && first.Type == html.TextNode {
		first.Data = text
		return
	}
	leading := &html.Node{Type: html.TextNode, Data: text}
	if first == nil {
		e.node.AppendChild(leading)
		return
	}
	e.node.InsertBefore(leading, first)
}

// Parent returns the parent element, or nil at the root or for detached nodes.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return Wrap(e.node.Parent)
}

// Children returns the direct element children.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if child := Wrap(c); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// AppendChild moves child under e, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if e == nil || child == nil {
		return
	}
	child.Remove()
	e.node.AppendChild(child.node)
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e == nil || e.node.Parent == nil {
		return
	}
	e.node.Parent.RemoveChild(e.node)
}

// RemoveChildren detaches every child node.
func (e *Element) RemoveChildren() {
	if e == nil {
		return
	}
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if e == nil || other == nil {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// SetInnerHTML parses markup in the context of e and replaces its children.
func (e *Element) SetInnerHTML(markup string) error {
	if e == nil {
		return fmt.Errorf("dom: nil element")
	}
	nodes, err := ParseFragment(markup, e.node)
	if err != nil {
		return err
	}
	e.RemoveChildren()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// AppendHTML parses markup and appends the resulting nodes after the existing
// children.
func (e *Element) AppendHTML(markup string) error {
	if e == nil {
		return fmt.Errorf("dom: nil element")
	}
	nodes, err := ParseFragment(markup, e.node)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// InnerHTML renders the children of e.
func (e *Element) InnerHTML() string {
	if e == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML renders e including its own tag.
func (e *Element) OuterHTML() string {
	if e == nil {
		return ""
	}
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}

// ParseFragment parses markup as the children of context. A nil context parses
// as if inside a <div>.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	if context.DataAtom == 0 {
		// Custom elements parse like a generic container.
		context = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}
