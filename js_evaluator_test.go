//go:build js_eval

package formselect

import (
	"errors"
	"slices"
	"testing"
)

func TestOptionsWhereJS(t *testing.T) {
	evaluator := NewJSEvaluator(JSWithFunctionRegistry(NewTextFunctionRegistry()), JSWithProgramCache(NewMemoryProgramCache()))
	doc := mustParse(t, pricedSelect, WithEvaluator(evaluator))
	sel := mustSelect(t, doc, "plan")

	matched, err := sel.OptionsWhere(`attrs["data-tier"] === "gold" && !disabled`)
	if err != nil {
		t.Fatalf("options where: %v", err)
	}
	if got := optionValues(matched); !slices.Equal(got, []string{"pro"}) {
		t.Fatalf("expected pro, got %v", got)
	}

	matched, err = sel.OptionsWhere(`number(text) > 10`)
	if err != nil {
		t.Fatalf("options where: %v", err)
	}
	if got := optionValues(matched); !slices.Equal(got, []string{"pro", "team"}) {
		t.Fatalf("expected pro and team, got %v", got)
	}

	if _, err := sel.OptionsWhere(`value`); !errors.Is(err, ErrPredicateNotBoolean) {
		t.Fatalf("expected ErrPredicateNotBoolean, got %v", err)
	}
}
