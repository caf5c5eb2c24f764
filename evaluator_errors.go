package formselect

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEvaluator is returned when no predicate evaluator can be resolved.
	ErrNoEvaluator = errors.New("formselect: evaluator not configured")

	// ErrPredicateNotBoolean is returned when an option predicate yields a
	// non-boolean result.
	ErrPredicateNotBoolean = errors.New("formselect: predicate must evaluate to a boolean")
)

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine string
	Expr   string
	Select string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("formselect: %s evaluator %s select=%s: %v", e.Engine, describeExpression(e.Expr), e.Select, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "formselect:") {
		return err
	}
	return fmt.Errorf("formselect: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr, selectName string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Select == "" {
			evalErr.Select = selectName
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Select: selectName,
		Err:    err,
	}
}
