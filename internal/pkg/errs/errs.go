package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// New returns a stack-annotated error.
func New(msg string) error {
	return cr.New(msg)
}

// Wrap annotates err with msg, keeping the original cause. Nil-safe.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr as a sentinel so errors.Is(err, markErr) holds
// without losing the underlying cause.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// ExtractStackLines renders the error with its stack trace and returns
// at most maxLines lines, for structured log output.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
