package formselect

import "github.com/goliatone/go-formselect/pkg/activity"

// WithDocumentID overrides the generated document identifier.
func WithDocumentID(id string) DocumentOption {
	return func(cfg *documentConfig) {
		cfg.id = id
	}
}

// WithURL records the page URL the document was loaded from.
func WithURL(url string) DocumentOption {
	return func(cfg *documentConfig) {
		cfg.url = url
	}
}

// WithEvaluator configures the evaluator used for option predicates.
func WithEvaluator(e Evaluator) DocumentOption {
	return func(cfg *documentConfig) {
		cfg.evaluator = e
	}
}

// WithProgramCache registers a program cache used by the default evaluator.
func WithProgramCache(cache ProgramCache) DocumentOption {
	return func(cfg *documentConfig) {
		cfg.programCache = cache
	}
}

// WithEvaluatorLogger attaches an evaluator logger to the document.
func WithEvaluatorLogger(logger EvaluatorLogger) DocumentOption {
	return func(cfg *documentConfig) {
		if logger == nil {
			cfg.evaluatorLogger = noopEvaluatorLogger{}
			return
		}
		cfg.evaluatorLogger = logger
	}
}

// WithMutationLogger attaches a mutation logger to the document.
func WithMutationLogger(logger MutationLogger) DocumentOption {
	return func(cfg *documentConfig) {
		if logger == nil {
			cfg.mutationLogger = noopMutationLogger{}
			return
		}
		cfg.mutationLogger = logger
	}
}

// WithLogger routes both mutation and evaluator events to logger.
func WithLogger(logger SlogLogger) DocumentOption {
	return func(cfg *documentConfig) {
		cfg.mutationLogger = logger
		cfg.evaluatorLogger = logger
	}
}

// WithActivityHooks attaches activity hooks to the document. Hooks are cloned
// and nil entries dropped. Emission is enabled unless WithActivityConfig
// says otherwise.
func WithActivityHooks(hooks activity.Hooks) DocumentOption {
	normalized := hooks.Clone()
	return func(cfg *documentConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig overrides the activity emitter configuration.
func WithActivityConfig(config activity.Config) DocumentOption {
	return func(cfg *documentConfig) {
		c := config
		cfg.activityConfig = &c
	}
}

// WithActor sets the actor recorded on emitted activity events, typically
// the simulated browser session.
func WithActor(actorID string) DocumentOption {
	return func(cfg *documentConfig) {
		cfg.actorID = actorID
	}
}
