package dojson

import (
	"testing"
)

func passthrough(acc *Record, key string, value any) (any, error) {
	return value, nil
}

func TestRegistry_Over_DuplicatePatternIsConfigError(t *testing.T) {
	r := NewRegistry("test")
	if err := r.Over("a", `^100..`, passthrough); err != nil {
		t.Fatalf("first registration err: %v", err)
	}
	err := r.Over("b", `^100..`, passthrough)
	if err == nil {
		t.Fatalf("expected duplicate_rule error")
	}
	iss, ok := AsIssues(err)
	if !ok || iss[0].Code != CodeDuplicateRule {
		t.Fatalf("expected duplicate_rule issue, got %v", err)
	}
}

func TestRegistry_Over_BadPattern(t *testing.T) {
	r := NewRegistry("test")
	err := r.Over("a", `^(`, passthrough)
	if err == nil {
		t.Fatalf("expected bad_pattern error")
	}
	if iss, _ := AsIssues(err); iss[0].Code != CodeBadPattern {
		t.Fatalf("expected bad_pattern issue, got %v", err)
	}
}

func TestRegistry_MustOver_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	r := NewRegistry("test")
	r.MustOver("a", `^100..`, passthrough)
	r.MustOver("b", `^100..`, passthrough)
}

func TestRegistry_Match_FirstRegisteredWins(t *testing.T) {
	r := NewRegistry("test")
	r.MustOver("first", `^65017`, passthrough)
	r.MustOver("second", `^650..`, passthrough)

	rule, ok := r.Match("65017")
	if !ok || rule.Key != "first" {
		t.Fatalf("expected first rule, got %+v ok=%v", rule, ok)
	}
	rule, ok = r.Match("650_2")
	if !ok || rule.Key != "second" {
		t.Fatalf("expected second rule, got %+v ok=%v", rule, ok)
	}
	if _, ok := r.Match("999__"); ok {
		t.Fatalf("unexpected match for unknown key")
	}
}

func TestRule_Apply_ForEachCollectsNonNil(t *testing.T) {
	r := NewRegistry("test")
	r.MustOver("out", `^100..`, func(acc *Record, key string, value any) (any, error) {
		s := String(value)
		if s == "skip" {
			return nil, nil
		}
		return s + "!", nil
	}, ForEach)

	rule, _ := r.Match("100__")
	got, err := rule.apply(NewRecord(), "100__", []any{"a", "skip", "b"})
	if err != nil {
		t.Fatalf("apply err: %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 || list[0] != "a!" || list[1] != "b!" {
		t.Fatalf("got %v", got)
	}
}

func TestRule_Apply_ForEachAllNilYieldsNil(t *testing.T) {
	r := NewRegistry("test")
	r.MustOver("out", `^100..`, func(acc *Record, key string, value any) (any, error) {
		return nil, nil
	}, ForEach)

	rule, _ := r.Match("100__")
	got, err := rule.apply(NewRecord(), "100__", []any{"a", "b"})
	if err != nil {
		t.Fatalf("apply err: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestRule_Apply_FlattenConcatenatesLists(t *testing.T) {
	r := NewRegistry("test")
	r.MustOver("out", `^400..`, func(acc *Record, key string, value any) (any, error) {
		return ForceList(Subfields(value)["a"]), nil
	}, ForEach, Flatten)

	rule, _ := r.Match("400__")
	got, err := rule.apply(NewRecord(), "400__", []any{
		map[string]any{"a": []any{"x", "y"}},
		map[string]any{"a": "z"},
	})
	if err != nil {
		t.Fatalf("apply err: %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 3 || list[2] != "z" {
		t.Fatalf("got %v", got)
	}
}
