package dojson

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
)

func TestRecord_SetGet_KeepsInsertionOrder(t *testing.T) {
	r := NewRecord()
	r.Set("980__", "z")
	r.Set("035__", "a")
	r.Set("100__", "b")
	r.Set("035__", "a2") // overwrite keeps position

	want := []string{"980__", "035__", "100__"}
	if !reflect.DeepEqual(r.Keys(), want) {
		t.Fatalf("keys: got %v, want %v", r.Keys(), want)
	}
	if r.Get("035__") != "a2" {
		t.Fatalf("overwrite lost: %v", r.Get("035__"))
	}
	if _, ok := r.Lookup("nope"); ok {
		t.Fatalf("lookup of absent key reported present")
	}
}

func TestRecord_Delete(t *testing.T) {
	r := NewRecord()
	r.Set("a", 1)
	r.Set("b", 2)
	r.Delete("a")
	if r.Len() != 1 || r.Keys()[0] != "b" {
		t.Fatalf("delete left %v", r.Keys())
	}
	r.Delete("missing") // no-op
}

func TestRecord_JSON_OrderedRoundtrip(t *testing.T) {
	in := `{"980__":{"a":"HEPNAMES"},"100__":{"a":"Smith, John"},"035__":[{"9":"ORCID","a":"0000-0001"},{"9":"BAI"}]}`

	var r Record
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	want := []string{"980__", "100__", "035__"}
	if !reflect.DeepEqual(r.Keys(), want) {
		t.Fatalf("keys: got %v, want %v", r.Keys(), want)
	}

	out, err := json.Marshal(&r)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	if string(out) != in {
		t.Fatalf("roundtrip mismatch:\n got %s\nwant %s", out, in)
	}
}

func TestRecord_UnmarshalJSON_NumbersAsJSONNumber(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"693__":{"s":2002}}`), &r); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	m := Subfields(r.Get("693__"))
	if _, ok := m["s"].(json.Number); !ok {
		t.Fatalf("expected json.Number, got %T", m["s"])
	}
}

func TestRecord_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`[1,2]`), &r)
	if err == nil {
		t.Fatalf("expected error for non-object input")
	}
	iss, ok := AsIssues(err)
	if !ok || iss[0].Code != CodeInvalidType {
		t.Fatalf("expected invalid_type issue, got %v", err)
	}
}
