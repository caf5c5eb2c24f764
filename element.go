package formselect

import (
	"strings"

	"github.com/goliatone/go-formselect/internal/htmlnode"
	"github.com/goliatone/go-formselect/pkg/activity"
	"golang.org/x/net/html"
)

// Element is the base capability shared by wrapped elements: attribute
// access, the control name, and generic click side effects.
type Element struct {
	node *html.Node
	doc  *Document
}

// Node returns the wrapped node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lower-cased tag name.
func (e *Element) TagName() string {
	return tagOf(e.node)
}

// Name returns the raw name attribute, empty when absent.
func (e *Element) Name() string {
	name, _ := htmlnode.Attr(e.node, "name")
	return name
}

// ID returns the raw id attribute, empty when absent.
func (e *Element) ID() string {
	id, _ := htmlnode.Attr(e.node, "id")
	return id
}

// Attr returns the value of the named attribute, matched case-insensitively.
func (e *Element) Attr(name string) (string, bool) {
	return htmlnode.Attr(e.node, name)
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	return htmlnode.HasAttr(e.node, name)
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) {
	htmlnode.SetAttr(e.node, name, value)
}

// RemoveAttr removes the named attribute in every case variant.
func (e *Element) RemoveAttr(name string) bool {
	return htmlnode.RemoveAttr(e.node, name)
}

// Text returns the trimmed text content.
func (e *Element) Text() string {
	return strings.TrimSpace(htmlnode.Text(e.node))
}

// Click runs the generic click side effects: an element.clicked activity
// event and a log entry. Plain elements never navigate.
func (e *Element) Click() (ClickResult, error) {
	if e.node == nil {
		return ClickFailed, elementError("click", e, ErrUnexpectedElement)
	}
	e.doc.mutationLogger().LogMutation(MutationLogEvent{
		Action: ActionClick,
		Select: e.Name(),
		Value:  e.key(),
	})
	_ = e.doc.Notify(activity.BuildElementClickedEvent(activity.SelectionEventInput{
		ElementID: e.key(),
		Metadata:  map[string]any{"tag": e.TagName()},
	}))
	return ClickSucceededNoNavigation, nil
}

// key identifies the element on events: the id attribute, else tag and name,
// else the tag alone.
func (e *Element) key() string {
	if id := strings.TrimSpace(e.ID()); id != "" {
		return id
	}
	if name := strings.TrimSpace(e.Name()); name != "" {
		return e.TagName() + "[name=" + name + "]"
	}
	return e.TagName()
}

// attrMap exposes the attributes to predicate engines, which expect
// map[string]any.
func (e *Element) attrMap() map[string]any {
	attrs := htmlnode.Attrs(e.node)
	out := make(map[string]any, len(attrs))
	for key, value := range attrs {
		out[key] = value
	}
	return out
}
