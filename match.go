package formselect

import (
	"fmt"
	"time"
)

// OptionsWhere returns the options for which expression evaluates to true,
// in document order. The predicate sees the variables value, text, label,
// index, selected, marked, disabled, attrs and multiple, plus select_name,
// now, args and metadata.
func (s *Select) OptionsWhere(expression string) ([]*Option, error) {
	return s.match(expression)
}

// SelectWhere marks every option matching expression as selected and
// returns the number of matches. In a single-valued select the last match
// ends up selected.
func (s *Select) SelectWhere(expression string) (int, error) {
	matched, err := s.match(expression)
	if err != nil {
		return 0, err
	}
	for _, opt := range matched {
		s.MakeSelected(opt, true)
	}
	return len(matched), nil
}

func (s *Select) match(expression string) ([]*Option, error) {
	start := time.Now()
	event := EvaluatorLogEvent{Expr: expression, Select: s.Name()}
	logger := s.doc.evaluatorLogger()

	evaluator, err := s.doc.resolveEvaluator()
	if err != nil {
		event.Err = err
		logger.LogEvaluation(event)
		return nil, err
	}
	event.Engine = engineName(evaluator)

	matched, err := s.evaluateOptions(evaluator, event.Engine, expression)
	event.Matched = len(matched)
	event.Duration = time.Since(start)
	event.Err = err
	logger.LogEvaluation(event)
	if err != nil {
		return nil, err
	}
	return matched, nil
}

func (s *Select) evaluateOptions(evaluator Evaluator, engine, expression string) ([]*Option, error) {
	rule, err := evaluator.Compile(expression)
	if err != nil {
		return nil, wrapEvaluationError(engine, expression, s.Name(), err)
	}

	options := s.Options()
	mask := s.selectionMask(options)
	multiple := s.MultiValued()
	now := time.Now()

	var matched []*Option
	for i, opt := range options {
		ctx := RuleContext{
			Snapshot:   opt.predicateBindings(i, mask[i], multiple),
			Now:        &now,
			SelectName: s.Name(),
		}
		result, err := rule.Evaluate(ctx)
		if err != nil {
			return nil, wrapEvaluationError(engine, expression, ctx.selectLabel(), err)
		}
		ok, isBool := result.(bool)
		if !isBool {
			return nil, wrapEvaluationError(engine, expression, ctx.selectLabel(),
				fmt.Errorf("%w: option %d returned %T", ErrPredicateNotBoolean, i, result))
		}
		if ok {
			matched = append(matched, opt)
		}
	}
	return matched, nil
}

func (o *Option) predicateBindings(index int, selected, multiple bool) map[string]any {
	return map[string]any{
		"value":    o.OptionValue(),
		"text":     o.Text(),
		"label":    o.Label(),
		"index":    index,
		"selected": selected,
		"marked":   o.Marked(),
		"disabled": o.Disabled(),
		"attrs":    o.attrMap(),
		"multiple": multiple,
	}
}

func engineName(evaluator Evaluator) string {
	if named, ok := evaluator.(interface{ engine() string }); ok {
		return named.engine()
	}
	return fmt.Sprintf("%T", evaluator)
}
