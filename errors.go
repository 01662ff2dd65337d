package dateconv

import "fmt"

// ParseError is returned when input text cannot be interpreted as a valid
// calendar date under the active pattern. That covers malformed syntax,
// text that does not line up with the pattern, and impossible dates such
// as February 30th.
type ParseError struct {
	// Input is the text that failed to parse.
	Input string
	// Pattern is the active pattern, or empty for the default ISO-8601 form.
	Pattern string
	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("dateconv: cannot parse %q as a calendar date: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("dateconv: cannot parse %q with pattern %q: %v", e.Input, e.Pattern, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PatternError is returned when a caller-supplied pattern string is not a
// syntactically valid formatting pattern.
type PatternError struct {
	// Pattern is the rejected pattern string.
	Pattern string
	// Pos is the rune offset of the offending part of the pattern.
	Pos int
	// Reason describes what is wrong with it.
	Reason string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("dateconv: invalid pattern %q at position %d: %s", e.Pattern, e.Pos, e.Reason)
}

// FormatError is returned when a syntactically valid pattern requests a
// field that a date-only value cannot supply, such as an hour or a
// timezone offset.
type FormatError struct {
	// Pattern is the pattern that requested the field.
	Pattern string
	// Letter is the pattern letter for the unavailable field.
	Letter rune
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dateconv: pattern %q requests field %q which a calendar date cannot supply", e.Pattern, e.Letter)
}

func patternErr(pattern string, pos int, format string, args ...interface{}) *PatternError {
	return &PatternError{Pattern: pattern, Pos: pos, Reason: fmt.Sprintf(format, args...)}
}
