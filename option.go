package formselect

import (
	"strings"

	"github.com/goliatone/go-formselect/internal/htmlnode"
)

// Option wraps an <option> element. Whether an option is selected depends on
// its siblings, so Selected and SetSelected delegate to the owning Select.
type Option struct {
	Element

	owner *Select
}

// OptionValue is the value submitted for the option: the trimmed value
// attribute when present, otherwise the trimmed text content.
func (o *Option) OptionValue() string {
	if value, ok := o.Attr("value"); ok {
		return strings.TrimSpace(value)
	}
	return o.Text()
}

// Value returns the displayed text, trimmed. Use OptionValue for the
// submitted value.
func (o *Option) Value() string {
	return o.Text()
}

// SetValue always fails: the text of an option is not an assignable value.
// Set the value attribute, or assign through Select.SetValue.
func (o *Option) SetValue(string) error {
	return &ElementError{
		Op:   "set value",
		Tag:  o.TagName(),
		Name: o.Name(),
		Hint: "set the value attribute",
		Err:  ErrUnsupportedOperation,
	}
}

// Label returns the trimmed label attribute, falling back to the text.
func (o *Option) Label() string {
	if label, ok := o.Attr("label"); ok {
		return strings.TrimSpace(label)
	}
	return o.Text()
}

// Disabled reports whether the option, or an enclosing optgroup, carries a
// disabled attribute.
func (o *Option) Disabled() bool {
	if o.HasAttr("disabled") {
		return true
	}
	group := htmlnode.Closest(o.node, "optgroup")
	return group != nil && htmlnode.HasAttr(group, "disabled")
}

// Marked reports whether the option carries an explicit selected marker.
// Unlike Selected it ignores the default-first rule.
func (o *Option) Marked() bool {
	return o.HasAttr(selectedAttr)
}

// Owner returns the nearest enclosing select. The lookup runs once and is
// cached.
func (o *Option) Owner() (*Select, error) {
	if o.owner != nil {
		return o.owner, nil
	}
	node := htmlnode.Closest(o.node, "select")
	if node == nil {
		return nil, elementError("resolve owner", &o.Element, ErrOwnerNotFound)
	}
	o.owner = o.doc.newSelect(node)
	return o.owner, nil
}

// Selected reports whether the option counts as selected.
func (o *Option) Selected() (bool, error) {
	owner, err := o.Owner()
	if err != nil {
		return false, err
	}
	return owner.IsSelected(o), nil
}

// SetSelected selects or deselects the option through its owner.
func (o *Option) SetSelected(selected bool) error {
	owner, err := o.Owner()
	if err != nil {
		return err
	}
	owner.MakeSelected(o, selected)
	return nil
}

// Index returns the option's position among its owner's options.
func (o *Option) Index() (int, error) {
	owner, err := o.Owner()
	if err != nil {
		return -1, err
	}
	return owner.indexOf(o), nil
}

// Click runs the generic element click and then toggles the selection.
// Selecting an option never navigates.
func (o *Option) Click() (ClickResult, error) {
	if _, err := o.Element.Click(); err != nil {
		return ClickFailed, err
	}
	selected, err := o.Selected()
	if err != nil {
		return ClickFailed, err
	}
	if err := o.SetSelected(!selected); err != nil {
		return ClickFailed, err
	}
	return ClickSucceededNoNavigation, nil
}
