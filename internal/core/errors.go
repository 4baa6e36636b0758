package core

import "fmt"

// ValidationError reports malformed caller input: unparseable JSON or an
// unknown archetype on a strict path. Never fatal to the process.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConfigurationError reports missing configuration (credential or
// destination). Remediation carries actionable setup steps for the caller.
type ConfigurationError struct {
	Missing     string
	Remediation string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not configured", e.Missing)
}

// UnsupportedOperationError reports an operation invoked against a destination
// that does not support it, such as an attribute update on a freestanding page.
type UnsupportedOperationError struct {
	Op          string
	Destination string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s is not supported by the %s destination", e.Op, e.Destination)
}
