package formselect

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Function is a helper callable from option predicates, e.g. a price
// parser used as `price(text) < 10`.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom functions keyed by name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("formselect: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("formselect: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("formselect: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("formselect: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("formselect: function %q not registered", name)
	}
	return fn(args...)
}

func (r *FunctionRegistry) bound(name string) func(...any) (any, error) {
	return func(args ...any) (any, error) {
		return r.Call(name, args...)
	}
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge registers every function of other into r. Names already present in
// r keep their function; each clash is reported in the joined error.
func (r *FunctionRegistry) Merge(other *FunctionRegistry) error {
	if other == nil {
		return nil
	}
	other.mu.RLock()
	functions := make(map[string]Function, len(other.functions))
	for name, fn := range other.functions {
		functions[name] = fn
	}
	other.mu.RUnlock()

	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := r.Register(name, functions[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithFunctionRegistry exposes the functions in registry to option
// predicates. It adds to functions registered by earlier options.
func WithFunctionRegistry(registry *FunctionRegistry) DocumentOption {
	return func(cfg *documentConfig) {
		if registry == nil {
			return
		}
		if cfg.functions == nil {
			cfg.functions = registry.Clone()
			return
		}
		if err := cfg.functions.Merge(registry); err != nil {
			cfg.optionErrs = append(cfg.optionErrs, err)
		}
	}
}

// WithCustomFunction registers fn under name for option predicates. A name
// that is already taken keeps its first function; the clash is reported to
// the evaluator logger when the document is created.
func WithCustomFunction(name string, fn Function) DocumentOption {
	return func(cfg *documentConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		if err := cfg.functions.Register(name, fn); err != nil {
			cfg.optionErrs = append(cfg.optionErrs, err)
		}
	}
}

// NewTextFunctionRegistry returns a registry preloaded with helpers that are
// handy when matching option text:
//
//	normalize(s)  collapses runs of whitespace and trims the result
//	lower(s)      lower-cases s
//	number(s)     parses the first decimal number found in s, 0 when none
func NewTextFunctionRegistry() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("normalize", func(args ...any) (any, error) {
		s, err := stringArg("normalize", args)
		if err != nil {
			return nil, err
		}
		return strings.Join(strings.Fields(s), " "), nil
	})
	_ = registry.Register("lower", func(args ...any) (any, error) {
		s, err := stringArg("lower", args)
		if err != nil {
			return nil, err
		}
		return strings.ToLower(s), nil
	})
	_ = registry.Register("number", func(args ...any) (any, error) {
		s, err := stringArg("number", args)
		if err != nil {
			return nil, err
		}
		return firstNumber(s), nil
	})
	return registry
}

func stringArg(name string, args []any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("formselect: %s expects 1 argument, got %d", name, len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("formselect: %s expects a string, got %T", name, args[0])
	}
	return s, nil
}

func firstNumber(s string) float64 {
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0
	}
	if start > 0 && s[start-1] == '-' {
		start--
	}
	end := start + 1
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(s[start:end], "."), 64)
	if err != nil {
		return 0
	}
	return value
}
