package dojson

import (
	"fmt"
	"regexp"
)

// Transform converts one input field into its structured (or tag-coded)
// counterpart. acc is the output record under construction; transforms may
// read and write accumulator keys beyond their nominal output key, which is
// the documented side-effect contract of specific rules. A nil result means
// the value was consumed (or dropped) and nothing is assigned.
type Transform func(acc *Record, key string, value any) (any, error)

// Modifier adjusts how a rule's transform is applied to repeated input.
type Modifier int

const (
	// ForEach applies the transform once per element of the forced list and
	// collects the non-nil results.
	ForEach Modifier = 1 << iota
	// Flatten concatenates per-element list results into one flat list.
	// Only meaningful together with ForEach.
	Flatten
)

// Rule is an immutable (pattern, transform) pair registered under an output
// key. Rules are matched against input field keys in registration order.
type Rule struct {
	Key     string // Nominal output key the result is assigned to.
	Pattern string // Anchored regexp source over the input field key.
	Mods    Modifier

	re *regexp.Regexp
	fn Transform
}

// Registry is an ordered table of rules for one transformation direction.
// It is immutable once the owning package finishes registration and may be
// shared by any number of concurrent Do passes.
type Registry struct {
	name     string
	rules    []*Rule
	patterns map[string]struct{}
}

// NewRegistry returns an empty registry. name labels the direction in
// errors (e.g. "hepnames", "hepnames2marc").
func NewRegistry(name string) *Registry {
	return &Registry{name: name, patterns: map[string]struct{}{}}
}

// Name returns the registry's direction label.
func (r *Registry) Name() string { return r.name }

// Over registers fn as the rule producing key for input fields matching
// pattern. Patterns are evaluated in registration order; the first match
// wins. Registering the same pattern twice in one registry is a
// configuration error.
func (r *Registry) Over(key, pattern string, fn Transform, mods ...Modifier) error {
	if _, dup := r.patterns[pattern]; dup {
		return Issues{{
			Path:    pattern,
			Code:    CodeDuplicateRule,
			Message: fmt.Sprintf("%s: pattern %q registered twice", r.name, pattern),
			Rule:    pattern,
		}}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Issues{{
			Path:    pattern,
			Code:    CodeBadPattern,
			Message: fmt.Sprintf("%s: invalid rule pattern", r.name),
			Cause:   err,
			Rule:    pattern,
		}}
	}
	var m Modifier
	for _, mod := range mods {
		m |= mod
	}
	r.patterns[pattern] = struct{}{}
	r.rules = append(r.rules, &Rule{Key: key, Pattern: pattern, Mods: m, re: re, fn: fn})
	return nil
}

// MustOver registers a rule and panics on configuration errors. Registries
// are built at startup, before any record is processed, so a duplicate or
// invalid pattern halts initialization.
func (r *Registry) MustOver(key, pattern string, fn Transform, mods ...Modifier) {
	if err := r.Over(key, pattern, fn, mods...); err != nil {
		panic(err)
	}
}

// Match returns the first registered rule whose pattern matches fieldKey.
func (r *Registry) Match(fieldKey string) (*Rule, bool) {
	for _, rule := range r.rules {
		if rule.re.MatchString(fieldKey) {
			return rule, true
		}
	}
	return nil, false
}

// Rules returns the registered rules in order, for inspection.
func (r *Registry) Rules() []*Rule {
	out := make([]*Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// apply invokes the rule's transform honoring its modifiers.
func (rule *Rule) apply(acc *Record, key string, value any) (any, error) {
	if rule.Mods&ForEach == 0 {
		return rule.fn(acc, key, value)
	}

	var out []any
	for _, el := range ForceList(value) {
		res, err := rule.fn(acc, key, el)
		if err != nil {
			return nil, err
		}
		if res == nil {
			continue
		}
		if rule.Mods&Flatten != 0 {
			out = append(out, ForceList(res)...)
		} else {
			out = append(out, res)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
