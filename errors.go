package dojson

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeParseError    = "parse_error"
	CodeDuplicateRule = "duplicate_rule"
	CodeBadPattern    = "bad_pattern"
	// Collaborator unavailable errors (vocabulary service, reference resolver)
	CodeDependencyUnavailable = "dependency_unavailable"
)

// Issue represents a single engine or configuration error entry.
type Issue struct {
	Path    string // Field key or JSON Pointer the issue refers to.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Rule optionally records the rule pattern that produced this issue.
	Rule string
}

// Issues is a collection of errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. duplicate_rule at ^035..
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the first underlying cause, if any.
func (iss Issues) Unwrap() error {
	for _, it := range iss {
		if it.Cause != nil {
			return it.Cause
		}
	}
	return nil
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
