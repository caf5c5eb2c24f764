// Package htmlnode provides attribute and traversal helpers over
// golang.org/x/net/html nodes.
//
// Attribute names and tag names are matched case-insensitively so that trees
// built by hand (or by parsers that preserve case) behave the same as trees
// produced by html.Parse, which lower-cases everything.
package htmlnode

import (
	"strings"

	"golang.org/x/net/html"
)

// IsElement reports whether n is an element node whose tag equals tag,
// ignoring case.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// Attr returns the value of the first attribute named name.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries an attribute named name, regardless of
// its value.
func HasAttr(n *html.Node, name string) bool {
	_, ok := Attr(n, name)
	return ok
}

// SetAttr sets name to value. The first matching attribute is updated in
// place and any case-variant duplicates are dropped.
func SetAttr(n *html.Node, name, value string) {
	if n == nil {
		return
	}
	set := false
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			if set {
				continue
			}
			attr.Key = name
			attr.Val = value
			set = true
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
	if !set {
		n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	}
}

// RemoveAttr drops every attribute named name and reports whether anything
// was removed.
func RemoveAttr(n *html.Node, name string) bool {
	if n == nil {
		return false
	}
	removed := false
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			removed = true
			continue
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
	return removed
}

// Descendants returns every element below n, in document order, whose tag
// equals tag. n itself is never included.
func Descendants(n *html.Node, tag string) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(parent *html.Node) {
		for child := parent.FirstChild; child != nil; child = child.NextSibling {
			if IsElement(child, tag) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

// Closest returns the nearest strict ancestor of n whose tag equals tag.
func Closest(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if IsElement(p, tag) {
			return p
		}
	}
	return nil
}

// Find returns the first element below root, in document order, for which
// match returns true.
func Find(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && match(child) {
			return child
		}
		if found := Find(child, match); found != nil {
			return found
		}
	}
	return nil
}

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(parent *html.Node) {
		for child := parent.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case html.TextNode:
				b.WriteString(child.Data)
			case html.ElementNode, html.DocumentNode:
				walk(child)
			}
		}
	}
	walk(n)
	return b.String()
}

// Attrs returns the attributes of n keyed by lower-cased name. The first
// occurrence of a name wins.
func Attrs(n *html.Node) map[string]string {
	if n == nil || len(n.Attr) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(n.Attr))
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = attr.Val
	}
	return out
}
