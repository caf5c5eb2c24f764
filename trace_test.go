package formselect

import "testing"

func TestExplainReasons(t *testing.T) {
	cases := []struct {
		name     string
		markup   string
		index    int
		reason   string
		selected bool
	}{
		{name: "default first", markup: abcSelect, index: 0, reason: ReasonDefaultFirst, selected: true},
		{name: "not first", markup: abcSelect, index: 2, reason: ReasonNotFirst, selected: false},
		{
			name:     "explicit marked",
			markup:   `<select name="letter"><option>a</option><option selected>b</option></select>`,
			index:    1,
			reason:   ReasonExplicit,
			selected: true,
		},
		{
			name:     "explicit unmarked first",
			markup:   `<select name="letter"><option>a</option><option selected>b</option></select>`,
			index:    0,
			reason:   ReasonExplicit,
			selected: false,
		},
		{
			name:     "multiple",
			markup:   `<select name="letter" multiple><option>a</option><option>b</option></select>`,
			index:    0,
			reason:   ReasonMultiple,
			selected: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := mustSelect(t, mustParse(t, tc.markup), "letter")
			opt := sel.Options()[tc.index]
			trace := sel.Explain(opt)
			if trace.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, trace.Reason)
			}
			if trace.Selected != tc.selected || trace.Selected != sel.IsSelected(opt) {
				t.Fatalf("expected selected=%t, got %t", tc.selected, trace.Selected)
			}
			if trace.Index != tc.index || trace.Select != "letter" {
				t.Fatalf("unexpected trace %+v", trace)
			}
		})
	}
}

func TestSelectionTraceJSONRoundTrip(t *testing.T) {
	sel := mustSelect(t, mustParse(t, abcSelect), "letter")
	trace := sel.Explain(sel.Options()[0])

	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	decoded, err := SelectionTraceFromJSON(payload)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if decoded != trace {
		t.Fatalf("expected %+v, got %+v", trace, decoded)
	}
	if _, err := SelectionTraceFromJSON([]byte("{")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
