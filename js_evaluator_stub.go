//go:build !js_eval

package formselect

// NewJSEvaluator is unavailable without the js_eval build tag and returns nil.
// Documents fall back to the expr engine when handed a nil evaluator.
func NewJSEvaluator(...JSEvaluatorOption) Evaluator {
	return nil
}
