package dom

import "golang.org/x/net/html"

// Matcher selects elements during a query.
type Matcher func(*Element) bool

// ByTag matches elements with the given tag name.
func ByTag(tag string) Matcher {
	return func(e *Element) bool { return e.Tag() == tag }
}

// ByClass matches elements carrying class in their class list.
func ByClass(class string) Matcher {
	return func(e *Element) bool { return e.HasClass(class) }
}

// ByAttr matches elements whose attribute name equals value.
func ByAttr(name, value string) Matcher {
	return func(e *Element) bool {
		got, ok := e.Attr(name)
		return ok && got == value
	}
}

// ByID matches the element with the given id.
func ByID(id string) Matcher {
	return ByAttr("id", id)
}

// All matches when every matcher does.
func All(matchers ...Matcher) Matcher {
	return func(e *Element) bool {
		for _, m := range matchers {
			if m != nil && !m(e) {
				return false
			}
		}
		return true
	}
}

// Find returns the first descendant of e, in document order, accepted by m.
func (e *Element) Find(m Matcher) *Element {
	if e == nil || m == nil {
		return nil
	}
	var found *Element
	walk(e.node, func(n *html.Node) bool {
		if el := Wrap(n); el != nil && m(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant of e accepted by m.
func (e *Element) FindAll(m Matcher) []*Element {
	if e == nil || m == nil {
		return nil
	}
	var out []*Element
	walk(e.node, func(n *html.Node) bool {
		if el := Wrap(n); el != nil && m(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// walk visits the descendants of root depth-first and stops once visit returns
// false.
func walk(root *html.Node, visit func(*html.Node) bool) bool {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if !visit(c) {
			return false
		}
		if !walk(c, visit) {
			return false
		}
	}
	return true
}
