package dojson

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Record is an insertion-ordered mapping from field key to value. It serves
// both directions of a transformation: as the tag-coded input/output (keys
// are 5-character MARC keys such as "035__", values are subfield maps or
// lists of them) and as the structured record (keys are canonical field
// names, values are JSON-shaped).
//
// A Record is not safe for concurrent mutation; each transformation pass
// owns its accumulator exclusively.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty ordered record.
func NewRecord() *Record {
	return &Record{values: map[string]any{}}
}

// Len reports the number of keys present.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return r.keys
}

// Get returns the value stored at key, or nil when absent.
func (r *Record) Get(key string) any {
	if r == nil {
		return nil
	}
	return r.values[key]
}

// Lookup returns the value stored at key and whether it is present.
func (r *Record) Lookup(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Set stores v at key. A key keeps its original position when overwritten.
func (r *Record) Set(key string, v any) {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Delete removes key and its value. Missing keys are a no-op.
func (r *Record) Delete(key string) {
	if r == nil {
		return
	}
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// MarshalJSON emits the record as a JSON object in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	b := &bytes.Buffer{}
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order. Numbers decode
// as json.Number so integer subfields survive coercion via MaybeInt.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Issues{{Path: "/", Code: CodeParseError, Message: "invalid record JSON", Cause: err}}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: fmt.Sprintf("expected object, got %v", tok)}}
	}

	r.keys = nil
	r.values = map[string]any{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return Issues{{Path: "/", Code: CodeParseError, Message: "invalid record key", Cause: err}}
		}
		key, ok := kt.(string)
		if !ok {
			return Issues{{Path: "/", Code: CodeParseError, Message: "non-string record key"}}
		}
		v, err := decodeValue(dec)
		if err != nil {
			return Issues{{Path: "/" + key, Code: CodeParseError, Message: "invalid record value", Cause: err}}
		}
		r.Set(key, v)
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return Issues{{Path: "/", Code: CodeParseError, Message: "truncated record JSON", Cause: err}}
	}
	return nil
}

// decodeValue builds an "any" value from the decoder's token stream.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, io.ErrUnexpectedEOF
		}
	default:
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (any, error) {
	m := make(map[string]any)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeArray(dec *json.Decoder) (any, error) {
	var arr []any
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
