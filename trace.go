package formselect

import (
	"encoding/json"
)

// Reasons reported by Explain.
const (
	// ReasonMultiple: the select is multi-valued, so the option's own marker
	// decides.
	ReasonMultiple = "multiple"
	// ReasonExplicit: some option carries a selected marker, so the option's
	// own marker decides.
	ReasonExplicit = "explicit"
	// ReasonDefaultFirst: nothing is marked and the option is the first one.
	ReasonDefaultFirst = "default-first"
	// ReasonNotFirst: nothing is marked and the option is not the first one.
	ReasonNotFirst = "not-first"
)

// SelectionTrace records which rule decided whether an option is selected.
type SelectionTrace struct {
	Select   string `json:"select,omitempty"`
	Value    string `json:"value"`
	Index    int    `json:"index"`
	Multiple bool   `json:"multiple"`
	Marked   bool   `json:"marked"`
	Selected bool   `json:"selected"`
	Reason   string `json:"reason"`
}

// Explain reports whether opt counts as selected and why. An option that
// does not belong to the select is traced with index -1.
func (s *Select) Explain(opt *Option) SelectionTrace {
	trace := SelectionTrace{
		Select:   s.Name(),
		Index:    -1,
		Multiple: s.MultiValued(),
	}
	if opt == nil {
		trace.Reason = ReasonNotFirst
		return trace
	}
	trace.Value = opt.OptionValue()
	trace.Index = s.indexOf(opt)
	trace.Marked = opt.Marked()

	switch {
	case trace.Multiple:
		trace.Reason = ReasonMultiple
		trace.Selected = trace.Marked
	case anyMarked(s.Options()):
		trace.Reason = ReasonExplicit
		trace.Selected = trace.Marked
	case trace.Index == 0:
		trace.Reason = ReasonDefaultFirst
		trace.Selected = true
	default:
		trace.Reason = ReasonNotFirst
	}
	return trace
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t SelectionTrace) ToJSON() ([]byte, error) {
	type alias SelectionTrace
	return json.Marshal(alias(t))
}

// SelectionTraceFromJSON deserialises a payload produced by ToJSON.
func SelectionTraceFromJSON(payload []byte) (SelectionTrace, error) {
	type alias SelectionTrace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return SelectionTrace{}, err
	}
	return SelectionTrace(trace), nil
}
