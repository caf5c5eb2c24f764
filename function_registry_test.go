package formselect

import (
	"strings"
	"testing"
)

func TestFunctionRegistryRegisterAndCall(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("Double", func(args ...any) (any, error) {
		return args[0].(int) * 2, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("double", func(args ...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register("", func(args ...any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := registry.Register("nil", nil); err == nil {
		t.Fatalf("expected nil function to fail")
	}

	result, err := registry.Call("DOUBLE", 4)
	if err != nil || result != 8 {
		t.Fatalf("expected 8, got %v %v", result, err)
	}
	if _, err := registry.Call("missing"); err == nil {
		t.Fatalf("expected error for unknown function")
	}

	clone := registry.Clone()
	_ = clone.Register("extra", func(args ...any) (any, error) { return nil, nil })
	if len(registry.Names()) != 1 || len(clone.Names()) != 2 {
		t.Fatalf("clone should not share registrations: %v %v", registry.Names(), clone.Names())
	}
}

func TestTextFunctionRegistry(t *testing.T) {
	registry := NewTextFunctionRegistry()

	cases := []struct {
		fn   string
		arg  any
		want any
	}{
		{fn: "normalize", arg: "  Large \n  (XL) ", want: "Large (XL)"},
		{fn: "lower", arg: "MiXeD", want: "mixed"},
		{fn: "number", arg: "Pro ($12.50)", want: 12.5},
		{fn: "number", arg: "from -3 degrees", want: -3.0},
		{fn: "number", arg: "5.", want: 5.0},
		{fn: "number", arg: "none", want: 0.0},
	}
	for _, tc := range cases {
		got, err := registry.Call(tc.fn, tc.arg)
		if err != nil {
			t.Fatalf("%s(%v): %v", tc.fn, tc.arg, err)
		}
		if got != tc.want {
			t.Fatalf("%s(%v): expected %v, got %v", tc.fn, tc.arg, tc.want, got)
		}
	}

	if _, err := registry.Call("lower", 1); err == nil {
		t.Fatalf("expected type error")
	}
	if _, err := registry.Call("lower"); err == nil {
		t.Fatalf("expected arity error")
	}
}

func TestMemoryProgramCache(t *testing.T) {
	cache := &MemoryProgramCache{}
	if _, ok := cache.Get("a"); ok {
		t.Fatalf("expected miss")
	}
	cache.Set("a", 1)
	if value, ok := cache.Get("a"); !ok || value != 1 {
		t.Fatalf("expected hit, got %v %t", value, ok)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", cache.Len())
	}
}

func TestWithFunctionRegistryKeepsEarlierCustomFunctions(t *testing.T) {
	doc := mustParse(t, abcSelect,
		WithCustomFunction("shout", func(args ...any) (any, error) {
			return strings.ToUpper(args[0].(string)), nil
		}),
		WithFunctionRegistry(NewTextFunctionRegistry()),
	)
	if err := doc.ConfigError(); err != nil {
		t.Fatalf("unexpected config error: %v", err)
	}

	matched, err := mustSelect(t, doc, "letter").OptionsWhere(`shout(value) == "A" && normalize(text) == "A"`)
	if err != nil {
		t.Fatalf("options where: %v", err)
	}
	if len(matched) != 1 || matched[0].OptionValue() != "a" {
		t.Fatalf("expected option a, got %v", optionValues(matched))
	}
}

func TestDuplicateCustomFunctionIsReported(t *testing.T) {
	var events []EvaluatorLogEvent
	doc := mustParse(t, abcSelect,
		WithEvaluatorLogger(EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
			events = append(events, event)
		})),
		WithCustomFunction("pick", func(args ...any) (any, error) { return "first", nil }),
		WithCustomFunction("pick", func(args ...any) (any, error) { return "second", nil }),
		WithFunctionRegistry(func() *FunctionRegistry {
			registry := NewFunctionRegistry()
			_ = registry.Register("PICK", func(args ...any) (any, error) { return "third", nil })
			return registry
		}()),
	)

	err := doc.ConfigError()
	if err == nil || !strings.Contains(err.Error(), `"pick" already registered`) {
		t.Fatalf("expected duplicate registration error, got %v", err)
	}
	if len(events) != 1 || events[0].Err == nil {
		t.Fatalf("expected the clash to be logged once, got %+v", events)
	}

	matched, err := mustSelect(t, doc, "letter").OptionsWhere(`pick() == "first"`)
	if err != nil {
		t.Fatalf("options where: %v", err)
	}
	if len(matched) != 3 {
		t.Fatalf("expected the first registration to win, got %v", optionValues(matched))
	}
}

func TestFunctionRegistryMerge(t *testing.T) {
	base := NewFunctionRegistry()
	_ = base.Register("a", func(args ...any) (any, error) { return 1, nil })
	other := NewFunctionRegistry()
	_ = other.Register("a", func(args ...any) (any, error) { return 2, nil })
	_ = other.Register("b", func(args ...any) (any, error) { return 3, nil })

	if err := base.Merge(other); err == nil {
		t.Fatalf("expected clash on a")
	}
	if got, _ := base.Call("a"); got != 1 {
		t.Fatalf("expected existing function to be kept, got %v", got)
	}
	if got, _ := base.Call("b"); got != 3 {
		t.Fatalf("expected merged function, got %v", got)
	}
	if err := base.Merge(nil); err != nil {
		t.Fatalf("merging nil should be a no-op, got %v", err)
	}
}

func TestJSEvaluatorOptions(t *testing.T) {
	cache := NewMemoryProgramCache()
	registry := NewTextFunctionRegistry()
	e := &jsEvaluator{}
	for _, opt := range []JSEvaluatorOption{JSWithProgramCache(cache), JSWithFunctionRegistry(registry), JSWithFunctionRegistry(nil)} {
		opt(e)
	}
	if e.cache != cache {
		t.Fatalf("expected program cache to be wired")
	}
	if e.registry == nil || e.registry == registry || len(e.registry.Names()) != 3 {
		t.Fatalf("expected a cloned registry, got %v", e.registry)
	}
}
