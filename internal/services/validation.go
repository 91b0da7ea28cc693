package services

import "strings"

// ValidationError carries every violated rule from a create or update
// attempt. Callers re-present the full list to the submitter in one
// response instead of stopping at the first problem.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}
