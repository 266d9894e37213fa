// Package ref resolves numeric record ids to typed record references and
// back. A Reference identifies "record id N in collection C"; equality is by
// (Collection, ID). On the wire a reference is a JSON object with a single
// "$ref" member holding the record API URL.
package ref

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Server is the API host references point at.
const Server = "http://inspirehep.net/api"

// Reference is an opaque handle to a record in a collection.
type Reference struct {
	Collection string
	ID         int
}

// New returns a reference to record id in collection, or nil when the id is
// unknown (zero or negative). Unknown ids are not an error; the caller
// simply gets no linkage.
func New(id int, collection string) *Reference {
	if id <= 0 || collection == "" {
		return nil
	}
	return &Reference{Collection: collection, ID: id}
}

// URL renders the reference as its record API URL.
func (r *Reference) URL() string {
	return fmt.Sprintf("%s/%s/%d", Server, r.Collection, r.ID)
}

// MarshalJSON emits {"$ref": url}.
func (r *Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"$ref": r.URL()})
}

// UnmarshalJSON accepts {"$ref": url} and derives (Collection, ID) from the
// last two path segments.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed := fromURL(m["$ref"])
	if parsed == nil {
		return fmt.Errorf("ref: not a record reference: %q", m["$ref"])
	}
	*r = *parsed
	return nil
}

// RecID extracts the record id from a reference-shaped value: a *Reference,
// a Reference, or a decoded map with a "$ref" member. It returns nil for nil
// input and for values that do not carry a numeric id.
func RecID(v any) *int {
	switch t := v.(type) {
	case nil:
		return nil
	case *Reference:
		if t == nil {
			return nil
		}
		return &t.ID
	case Reference:
		return &t.ID
	case map[string]any:
		s, _ := t["$ref"].(string)
		if r := fromURL(s); r != nil {
			return &r.ID
		}
		return nil
	default:
		return nil
	}
}

func fromURL(u string) *Reference {
	u = strings.TrimSuffix(u, "/")
	i := strings.LastIndexByte(u, '/')
	if i < 0 {
		return nil
	}
	id, err := strconv.Atoi(u[i+1:])
	if err != nil || id <= 0 {
		return nil
	}
	rest := u[:i]
	j := strings.LastIndexByte(rest, '/')
	if j < 0 {
		return nil
	}
	return &Reference{Collection: rest[j+1:], ID: id}
}
