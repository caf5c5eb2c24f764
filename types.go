package formselect

import (
	"iter"
	"time"

	"github.com/goliatone/go-formselect/pkg/activity"
)

// Entry is one name/value pair contributed by a form control on submission.
type Entry struct {
	Name  string
	Value string
}

// ClickResult reports the outcome of a simulated click.
type ClickResult int

const (
	// ClickFailed means the click could not be applied.
	ClickFailed ClickResult = iota
	// ClickSucceededNoNavigation means side effects ran and the page stays put.
	ClickSucceededNoNavigation
	// ClickSucceededNavigation means the click triggered a navigation.
	ClickSucceededNavigation
)

func (r ClickResult) String() string {
	switch r {
	case ClickSucceededNoNavigation:
		return "succeeded-no-navigation"
	case ClickSucceededNavigation:
		return "succeeded-navigation"
	default:
		return "failed"
	}
}

// Submitter is implemented by form controls that contribute entries to a
// form submission. isClickedElement is true when the control is the one that
// triggered the submission.
type Submitter interface {
	ValuesToSubmit(isClickedElement bool) iter.Seq[Entry]
}

// Clicker is implemented by elements that react to simulated clicks.
type Clicker interface {
	Click() (ClickResult, error)
}

// RuleContext carries inputs needed when evaluating an option predicate.
type RuleContext struct {
	Snapshot   any
	Now        *time.Time
	Args       map[string]any
	Metadata   map[string]any
	SelectName string
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

// bindings returns the variables shared by every engine: now, args,
// metadata, select_name, plus each key of a map snapshot.
func (ctx RuleContext) bindings() map[string]any {
	env := map[string]any{
		"now":         ctx.timestamp(),
		"args":        ctx.Args,
		"metadata":    ctx.Metadata,
		"select_name": ctx.SelectName,
	}
	for key, value := range snapshotAsMap(ctx.Snapshot) {
		env[key] = value
	}
	return env
}

func snapshotAsMap(value any) map[string]any {
	if m, ok := value.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

func (ctx RuleContext) selectLabel() string {
	if ctx.SelectName != "" {
		return ctx.SelectName
	}
	return "unnamed"
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// DocumentOption configures a Document.
type DocumentOption func(*documentConfig)

type documentConfig struct {
	id              string
	url             string
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	evaluatorLogger EvaluatorLogger
	mutationLogger  MutationLogger
	activityHooks   activity.Hooks
	activityConfig  *activity.Config
	actorID         string
	optionErrs      []error
}

func applyDocumentOptions(opts []DocumentOption) documentConfig {
	cfg := documentConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg documentConfig) emitterConfig() activity.Config {
	out := activity.Config{Enabled: true}
	if cfg.activityConfig != nil {
		out = *cfg.activityConfig
	}
	if out.ActorID == "" {
		out.ActorID = cfg.actorID
	}
	return out
}
