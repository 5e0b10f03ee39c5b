package core

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTable = errors.New("transaction table is empty")
	ErrNoQuote    = errors.New("no quote data in response")
)

// SchemaError means a required column is absent from the input table.
// It is fatal to the whole report call.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q missing from transaction table", e.Column)
}

// DataFormatError means a column is present but systemically unusable,
// e.g. every date value failed to parse. Distinct from per-row skips.
type DataFormatError struct {
	Column string
	Reason string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("column %q has unusable data: %s", e.Column, e.Reason)
}

// InvalidArgumentError reports a malformed caller-supplied parameter,
// such as an unknown period code or a bad date string.
type InvalidArgumentError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%q: %s", e.Name, e.Value, e.Reason)
}

// ConfigError reports missing or malformed user configuration. A settings
// file that is absent is a ConfigError, never a silent empty default.
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("settings %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("settings %s: %s", e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }
