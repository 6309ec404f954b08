package config

import "fmt"

// ParseError reports a malformed settings file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string

	// Line and Column locate the error when the decoder reports them.
	Line   int
	Column int

	// Message describes the failure.
	Message string

	// Err is the underlying decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a rejected setting value.
type ValidationError struct {
	// Setting is the dotted path of the offending setting.
	Setting string

	// Message describes the constraint that failed.
	Message string

	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Setting, e.Message, e.Value)
}
