package formselect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formselect/internal/htmlnode"
	"github.com/goliatone/go-formselect/pkg/activity"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// Document is the browser-side context that owns a parsed HTML tree. It
// wraps raw nodes into typed elements and carries the configuration shared
// by those elements: loggers, activity hooks and the predicate evaluator.
//
// A Document is not safe for concurrent use; a simulated browser session
// drives one document at a time.
type Document struct {
	root    *html.Node
	id      string
	cfg     documentConfig
	emitter *activity.Emitter
}

// NewDocument wraps an already parsed tree.
func NewDocument(root *html.Node, opts ...DocumentOption) *Document {
	cfg := applyDocumentOptions(opts)
	id := strings.TrimSpace(cfg.id)
	if id == "" {
		id = uuid.NewString()
	}
	doc := &Document{
		root:    root,
		id:      id,
		cfg:     cfg,
		emitter: activity.NewEmitter(cfg.activityHooks, cfg.emitterConfig()),
	}
	if err := doc.ConfigError(); err != nil {
		doc.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{Err: err})
	}
	return doc
}

// ConfigError reports problems found while applying document options, such
// as a predicate function registered twice under the same name. The document
// stays usable; the first registration wins.
func (d *Document) ConfigError() error {
	return errors.Join(d.cfg.optionErrs...)
}

// Parse reads HTML from r and returns the resulting document.
func Parse(r io.Reader, opts ...DocumentOption) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("formselect: parse: %w", err)
	}
	return NewDocument(root, opts...), nil
}

// ParseString is Parse over an in-memory string.
func ParseString(markup string, opts ...DocumentOption) (*Document, error) {
	return Parse(strings.NewReader(markup), opts...)
}

// ID returns the document identifier used on activity events.
func (d *Document) ID() string {
	return d.id
}

// URL returns the page URL configured through WithURL.
func (d *Document) URL() string {
	return d.cfg.url
}

// Root returns the underlying tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// Element wraps any element node.
func (d *Document) Element(node *html.Node) (*Element, error) {
	if node == nil || node.Type != html.ElementNode {
		return nil, &ElementError{Op: "wrap element", Err: ErrUnexpectedElement}
	}
	return &Element{node: node, doc: d}, nil
}

// Select wraps node as a Select. node must be a select element.
func (d *Document) Select(node *html.Node) (*Select, error) {
	if !htmlnode.IsElement(node, "select") {
		return nil, &ElementError{Op: "wrap select", Tag: tagOf(node), Err: ErrUnexpectedElement}
	}
	return d.newSelect(node), nil
}

// Option wraps node as an Option. node must be an option element.
func (d *Document) Option(node *html.Node) (*Option, error) {
	if !htmlnode.IsElement(node, "option") {
		return nil, &ElementError{Op: "wrap option", Tag: tagOf(node), Err: ErrUnexpectedElement}
	}
	return d.newOption(node), nil
}

func (d *Document) newSelect(node *html.Node) *Select {
	return &Select{Element: Element{node: node, doc: d}}
}

func (d *Document) newOption(node *html.Node) *Option {
	return &Option{Element: Element{node: node, doc: d}}
}

// Selects returns every select in the document, in document order.
func (d *Document) Selects() []*Select {
	return d.wrapSelects(htmlnode.Descendants(d.root, "select"))
}

// FormSelects returns the selects inside the form whose name or id equals
// form. An empty form returns every select in the document.
func (d *Document) FormSelects(form string) ([]*Select, error) {
	form = strings.TrimSpace(form)
	if form == "" {
		return d.Selects(), nil
	}
	node := htmlnode.Find(d.root, func(n *html.Node) bool {
		if !htmlnode.IsElement(n, "form") {
			return false
		}
		name, _ := htmlnode.Attr(n, "name")
		id, _ := htmlnode.Attr(n, "id")
		return name == form || id == form
	})
	if node == nil {
		return nil, &ElementError{Op: "find form", Tag: "form", Name: form, Err: ErrElementNotFound}
	}
	return d.wrapSelects(htmlnode.Descendants(node, "select")), nil
}

func (d *Document) wrapSelects(nodes []*html.Node) []*Select {
	out := make([]*Select, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, d.newSelect(node))
	}
	return out
}

// SelectByName returns the first select whose name attribute equals name.
func (d *Document) SelectByName(name string) (*Select, error) {
	node := htmlnode.Find(d.root, func(n *html.Node) bool {
		if !htmlnode.IsElement(n, "select") {
			return false
		}
		value, ok := htmlnode.Attr(n, "name")
		return ok && value == name
	})
	if node == nil {
		return nil, &ElementError{Op: "find select", Tag: "select", Name: name, Err: ErrElementNotFound}
	}
	return d.newSelect(node), nil
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) (*Element, error) {
	node := htmlnode.Find(d.root, func(n *html.Node) bool {
		value, ok := htmlnode.Attr(n, "id")
		return ok && value == id
	})
	if node == nil {
		return nil, &ElementError{Op: "find element", Name: id, Err: ErrElementNotFound}
	}
	return &Element{node: node, doc: d}, nil
}

// Notify stamps event with the document id and URL and forwards it to the
// configured activity hooks. Hook failures are reported to the mutation
// logger and returned.
func (d *Document) Notify(event activity.Event) error {
	if !d.emitter.Enabled() {
		return nil
	}
	if event.DocumentID == "" {
		event.DocumentID = d.id
	}
	if event.PageURL == "" {
		event.PageURL = d.cfg.url
	}
	err := d.emitter.Emit(context.Background(), event)
	if err != nil {
		d.mutationLogger().LogMutation(MutationLogEvent{
			Action: ActionActivity,
			Value:  event.Verb,
			Err:    err,
		})
	}
	return err
}

// ActivityHooks returns a copy of the configured hooks.
func (d *Document) ActivityHooks() activity.Hooks {
	return d.cfg.activityHooks.Clone()
}

func (d *Document) mutationLogger() MutationLogger {
	if d.cfg.mutationLogger != nil {
		return d.cfg.mutationLogger
	}
	return noopMutationLogger{}
}

func (d *Document) evaluatorLogger() EvaluatorLogger {
	if d.cfg.evaluatorLogger != nil {
		return d.cfg.evaluatorLogger
	}
	return noopEvaluatorLogger{}
}

// resolveEvaluator returns the configured evaluator or lazily builds the
// default expr evaluator from the cache and function registry options.
func (d *Document) resolveEvaluator() (Evaluator, error) {
	if d.cfg.evaluator != nil {
		return d.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if d.cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(d.cfg.programCache))
	}
	if d.cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(d.cfg.functions))
	}
	evaluator := NewExprEvaluator(exprOpts...)
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	d.cfg.evaluator = evaluator
	return evaluator, nil
}

func tagOf(node *html.Node) string {
	if node == nil {
		return ""
	}
	return strings.ToLower(node.Data)
}
