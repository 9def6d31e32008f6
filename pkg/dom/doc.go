// Package dom provides small element helpers over golang.org/x/net/html trees:
// attribute and class manipulation, text updates, descendant queries and
// rendering. It is the document model used by the page host and the phone
// input widget, which patch rendered markup in place instead of re-rendering.
package dom
