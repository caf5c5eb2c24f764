package formselect

import (
	"iter"
	"strings"

	"github.com/goliatone/go-formselect/internal/htmlnode"
	"github.com/goliatone/go-formselect/pkg/activity"
)

const (
	selectedAttr = "selected"
	multipleAttr = "multiple"
)

// Select wraps a <select> element. It stores no selection state of its own:
// every answer is computed from the selected markers on its options plus
// document order.
//
// The option list is collected on first use and cached for the lifetime of
// the wrapper. Wrappers are meant to be short lived; call Reset after
// restructuring the tree outside this package.
type Select struct {
	Element

	options []*Option
	loaded  bool
}

// MultiValued reports whether the select carries a multiple attribute,
// whatever its value.
func (s *Select) MultiValued() bool {
	return s.HasAttr(multipleAttr)
}

// Options returns the option descendants at any depth, in document order.
func (s *Select) Options() []*Option {
	if !s.loaded {
		nodes := htmlnode.Descendants(s.node, "option")
		s.options = make([]*Option, 0, len(nodes))
		for _, node := range nodes {
			s.options = append(s.options, s.doc.newOption(node))
		}
		s.loaded = true
	}
	return s.options
}

// Reset drops the cached option list.
func (s *Select) Reset() {
	s.options = nil
	s.loaded = false
}

// IsSelected reports whether opt counts as selected. When the select is
// multi-valued, or any of its options carries a selected marker, only opt's
// own marker matters. Otherwise the first option is selected by default.
func (s *Select) IsSelected(opt *Option) bool {
	if opt == nil {
		return false
	}
	options := s.Options()
	if s.MultiValued() || anyMarked(options) {
		return opt.Marked()
	}
	return len(options) > 0 && options[0].node == opt.node
}

// MakeSelected sets or clears opt's selected marker. Selecting an option in
// a single-valued select clears the marker on every other option.
func (s *Select) MakeSelected(opt *Option, selected bool) {
	if opt == nil {
		return
	}
	if !selected {
		opt.RemoveAttr(selectedAttr)
		s.recordMutation(ActionDeselect, opt, nil)
		return
	}

	opt.SetAttr(selectedAttr, selectedAttr)
	var cleared []string
	if !s.MultiValued() {
		for _, other := range s.Options() {
			if other.node == opt.node {
				continue
			}
			if other.RemoveAttr(selectedAttr) {
				cleared = append(cleared, other.OptionValue())
			}
		}
	}
	s.recordMutation(ActionSelect, opt, cleared)
}

// Value returns the option value of the first selected option, falling back
// to the first option. ok is false when the select has no options.
func (s *Select) Value() (value string, ok bool) {
	options := s.Options()
	if len(options) == 0 {
		return "", false
	}
	mask := s.selectionMask(options)
	for i, opt := range options {
		if mask[i] {
			return opt.OptionValue(), true
		}
	}
	return options[0].OptionValue(), true
}

// SetValue marks every option whose option value equals the trimmed text
// and clears the marker everywhere else. When several options share the
// value they all end up marked.
func (s *Select) SetValue(text string) {
	s.setValues(ActionSetValue, strings.TrimSpace(text))
}

// SetValues is SetValue for several values at once: an option is marked iff
// its option value equals one of the trimmed values.
func (s *Select) SetValues(values ...string) {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		trimmed = append(trimmed, strings.TrimSpace(value))
	}
	s.setValues(ActionSetValue, trimmed...)
}

func (s *Select) setValues(action string, targets ...string) {
	wanted := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		wanted[target] = struct{}{}
	}
	var cleared []string
	for _, opt := range s.Options() {
		if _, ok := wanted[opt.OptionValue()]; ok {
			opt.SetAttr(selectedAttr, selectedAttr)
			continue
		}
		if opt.RemoveAttr(selectedAttr) {
			cleared = append(cleared, opt.OptionValue())
		}
	}

	value := strings.Join(targets, ",")
	s.doc.mutationLogger().LogMutation(MutationLogEvent{
		Action:  action,
		Select:  s.Name(),
		Value:   value,
		Cleared: cleared,
	})
	_ = s.doc.Notify(activity.BuildSelectValueSetEvent(activity.SelectionEventInput{
		SelectName: s.Name(),
		ElementID:  s.ID(),
		Value:      value,
		Cleared:    cleared,
	}))
}

// SelectedOptions returns the options that count as selected, in document
// order.
func (s *Select) SelectedOptions() []*Option {
	options := s.Options()
	mask := s.selectionMask(options)
	out := make([]*Option, 0, len(options))
	for i, opt := range options {
		if mask[i] {
			out = append(out, opt)
		}
	}
	return out
}

// SelectedIndex returns the position of the first selected option, 0 when
// none is selected but options exist, and -1 for an empty select.
func (s *Select) SelectedIndex() int {
	options := s.Options()
	if len(options) == 0 {
		return -1
	}
	mask := s.selectionMask(options)
	for i := range options {
		if mask[i] {
			return i
		}
	}
	return 0
}

// ValuesToSubmit yields one entry per selected option, in document order,
// named after the control. A select without a name contributes nothing.
// isClickedElement has no effect on selects.
func (s *Select) ValuesToSubmit(isClickedElement bool) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		name := s.Name()
		if name == "" {
			return
		}
		options := s.Options()
		mask := s.selectionMask(options)
		for i, opt := range options {
			if !mask[i] {
				continue
			}
			if !yield(Entry{Name: name, Value: opt.OptionValue()}) {
				return
			}
		}
	}
}

// selectionMask evaluates IsSelected for every option in one pass.
func (s *Select) selectionMask(options []*Option) []bool {
	mask := make([]bool, len(options))
	if s.MultiValued() || anyMarked(options) {
		for i, opt := range options {
			mask[i] = opt.Marked()
		}
		return mask
	}
	if len(mask) > 0 {
		mask[0] = true
	}
	return mask
}

func (s *Select) indexOf(opt *Option) int {
	for i, candidate := range s.Options() {
		if candidate.node == opt.node {
			return i
		}
	}
	return -1
}

func (s *Select) recordMutation(action string, opt *Option, cleared []string) {
	value := opt.OptionValue()
	s.doc.mutationLogger().LogMutation(MutationLogEvent{
		Action:  action,
		Select:  s.Name(),
		Value:   value,
		Cleared: cleared,
	})
	input := activity.SelectionEventInput{
		SelectName: s.Name(),
		ElementID:  opt.ID(),
		Value:      value,
		Index:      s.indexOf(opt),
		Cleared:    cleared,
	}
	if action == ActionDeselect {
		_ = s.doc.Notify(activity.BuildOptionDeselectedEvent(input))
		return
	}
	_ = s.doc.Notify(activity.BuildOptionSelectedEvent(input))
}

func anyMarked(options []*Option) bool {
	for _, opt := range options {
		if opt.Marked() {
			return true
		}
	}
	return false
}
