package dojson

import (
	"reflect"
	"testing"
)

func TestDo_UnknownKeysDroppedSilently(t *testing.T) {
	r := NewRegistry("test")
	r.MustOver("known", `^100..`, passthrough)

	in := NewRecord()
	in.Set("999__", map[string]any{"a": "x"})
	in.Set("100__", "v")

	out, err := r.Do(in)
	if err != nil {
		t.Fatalf("do err: %v", err)
	}
	if out.Len() != 1 || out.Get("known") != "v" {
		t.Fatalf("got %v", out.Keys())
	}
}

func TestDo_VisitsFieldsInInputOrder(t *testing.T) {
	r := NewRegistry("test")
	var seen []string
	record := func(acc *Record, key string, value any) (any, error) {
		seen = append(seen, key)
		return nil, nil
	}
	r.MustOver("a", `^100..`, record)
	r.MustOver("b", `^200..`, record)

	in := NewRecord()
	in.Set("200__", "x")
	in.Set("100__", "y")

	if _, err := r.Do(in); err != nil {
		t.Fatalf("do err: %v", err)
	}
	if !reflect.DeepEqual(seen, []string{"200__", "100__"}) {
		t.Fatalf("visit order %v", seen)
	}
}

func TestDo_SideEffectsVisibleToLaterRules(t *testing.T) {
	r := NewRegistry("test")
	r.MustOver("first", `^100..`, func(acc *Record, key string, value any) (any, error) {
		acc.Set("shared", "from-first")
		return "f", nil
	})
	r.MustOver("second", `^200..`, func(acc *Record, key string, value any) (any, error) {
		return String(acc.Get("shared")) + "+second", nil
	})

	in := NewRecord()
	in.Set("100__", "x")
	in.Set("200__", "y")

	out, err := r.Do(in)
	if err != nil {
		t.Fatalf("do err: %v", err)
	}
	if out.Get("second") != "from-first+second" {
		t.Fatalf("side effect not visible: %v", out.Get("second"))
	}
	if out.Get("shared") != "from-first" {
		t.Fatalf("side-effect key overridden: %v", out.Get("shared"))
	}
}

func TestDo_ForEachResultsExtendSharedOutputKey(t *testing.T) {
	// Two rules funneling into one output key, the way deleted/stub/collections
	// all feed the 980 field.
	r := NewRegistry("test")
	r.MustOver("980", `^one$`, func(acc *Record, key string, value any) (any, error) {
		return map[string]any{"a": String(value)}, nil
	}, ForEach)
	r.MustOver("980", `^two$`, func(acc *Record, key string, value any) (any, error) {
		return map[string]any{"c": String(value)}, nil
	}, ForEach)

	in := NewRecord()
	in.Set("one", "HEPNAMES")
	in.Set("two", "DELETED")

	out, err := r.Do(in)
	if err != nil {
		t.Fatalf("do err: %v", err)
	}
	list, ok := out.Get("980").([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("got %v", out.Get("980"))
	}
	if Subfields(list[0])["a"] != "HEPNAMES" || Subfields(list[1])["c"] != "DELETED" {
		t.Fatalf("merged list %v", list)
	}
}

func TestDo_NonForEachResultOverwrites(t *testing.T) {
	// Accumulating rules read the accumulator and return the extended value;
	// the engine must not double it by appending.
	r := NewRegistry("test")
	r.MustOver("list", `^in.$`, func(acc *Record, key string, value any) (any, error) {
		out := append([]any{}, ForceList(acc.Get("list"))...)
		return append(out, value), nil
	})

	in := NewRecord()
	in.Set("in1", "a")
	in.Set("in2", "b")

	out, err := r.Do(in)
	if err != nil {
		t.Fatalf("do err: %v", err)
	}
	list, ok := out.Get("list").([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("got %v", out.Get("list"))
	}
}

func TestDo_TransformErrorAbortsPass(t *testing.T) {
	r := NewRegistry("test")
	r.MustOver("a", `^100..`, func(acc *Record, key string, value any) (any, error) {
		return nil, Issues{{Path: key, Code: CodeDependencyUnavailable, Message: "vocab down"}}
	})

	in := NewRecord()
	in.Set("100__", "x")

	if _, err := r.Do(in); err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestDo_NilResultAssignsNothing(t *testing.T) {
	r := NewRegistry("test")
	r.MustOver("a", `^100..`, func(acc *Record, key string, value any) (any, error) {
		return nil, nil
	})

	in := NewRecord()
	in.Set("100__", "x")

	out, err := r.Do(in)
	if err != nil {
		t.Fatalf("do err: %v", err)
	}
	if _, ok := out.Lookup("a"); ok {
		t.Fatalf("nil result must not create the key")
	}
}
