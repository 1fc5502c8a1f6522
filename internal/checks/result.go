package checks

import (
	"fmt"
	"strings"
)

// ValidationError represents a single failed structural check with
// enough location context to act on it.
type ValidationError struct {
	File    string // source file the record came from
	Path    string // field location, e.g. "repos[2].hooks[0].id"
	Line    int    // 1-based line number when known
	Message string // what is wrong
	Hint    string // suggestion for fixing it
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		if e.Line > 0 {
			sb.WriteString(fmt.Sprintf(":%d", e.Line))
		}
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// FormatFull returns a detailed multi-line rendering for CLI output.
func (e *ValidationError) FormatFull() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("  Path: %s\n", e.Path))
	}
	sb.WriteString(fmt.Sprintf("  Error: %s\n", e.Message))
	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", e.Hint))
	}
	return sb.String()
}

// Result represents the complete outcome of checking one repository.
type Result struct {
	Valid  bool
	Errors []*ValidationError

	// Checked counts the records examined, keyed by surface name
	// (manifest, lint, isort, aliases).
	Checked map[string]int
}

// NewResult returns an empty passing result.
func NewResult() *Result {
	return &Result{Valid: true, Checked: map[string]int{}}
}

// AddError records a failed check and marks the result invalid.
func (r *Result) AddError(err *ValidationError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// Merge folds another result into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	for k, v := range other.Checked {
		r.Checked[k] += v
	}
}
