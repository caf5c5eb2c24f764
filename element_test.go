package formselect

import (
	"testing"

	"github.com/goliatone/go-formselect/internal/htmlnode"
	"github.com/goliatone/go-formselect/pkg/activity"
	"golang.org/x/net/html"
)

func findTag(t *testing.T, doc *Document, tag string) *html.Node {
	t.Helper()
	nodes := htmlnode.Descendants(doc.Root(), tag)
	if len(nodes) == 0 {
		t.Fatalf("no <%s> in document", tag)
	}
	return nodes[0]
}

func TestElementClick(t *testing.T) {
	capture := &activity.CaptureHook{}
	doc := mustParse(t, `<button name="go">Go</button><span>x</span>`, WithActivityHooks(activity.Hooks{capture}))

	button, err := doc.Element(findTag(t, doc, "button"))
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	result, err := button.Click()
	if err != nil || result != ClickSucceededNoNavigation {
		t.Fatalf("unexpected click result %v %v", result, err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 event, got %v", capture.Verbs())
	}
	event := capture.Events[0]
	if event.Verb != activity.VerbElementClicked || event.ObjectID != "button[name=go]" {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.Metadata["tag"] != "button" {
		t.Fatalf("expected tag metadata, got %v", event.Metadata)
	}

	span, _ := doc.Element(findTag(t, doc, "span"))
	if span.key() != "span" {
		t.Fatalf("expected bare tag key, got %q", span.key())
	}
}

func TestElementAttributes(t *testing.T) {
	doc := mustParse(t, `<select name="s" id="sid" data-Role="picker"><option>a</option></select>`)
	sel := mustSelect(t, doc, "s")

	if sel.TagName() != "select" || sel.ID() != "sid" {
		t.Fatalf("unexpected tag/id %q/%q", sel.TagName(), sel.ID())
	}
	if value, ok := sel.Attr("DATA-ROLE"); !ok || value != "picker" {
		t.Fatalf("expected case-insensitive attr lookup, got %q %t", value, ok)
	}
	sel.SetAttr("Data-Role", "chooser")
	if value, _ := sel.Attr("data-role"); value != "chooser" {
		t.Fatalf("expected updated attribute, got %q", value)
	}
	if !sel.RemoveAttr("DATA-role") || sel.HasAttr("data-role") {
		t.Fatalf("expected attribute removed")
	}
	if sel.RemoveAttr("data-role") {
		t.Fatalf("removing a missing attribute should report false")
	}
	if sel.Document() != doc {
		t.Fatalf("expected owning document")
	}
}

func TestClickResultString(t *testing.T) {
	cases := map[ClickResult]string{
		ClickFailed:                "failed",
		ClickSucceededNoNavigation: "succeeded-no-navigation",
		ClickSucceededNavigation:   "succeeded-navigation",
	}
	for result, want := range cases {
		if result.String() != want {
			t.Fatalf("expected %q, got %q", want, result.String())
		}
	}
}
