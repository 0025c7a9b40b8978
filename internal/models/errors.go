package models

import "fmt"

// ConfigurationError signals missing reference data or required property
// fields. Components that document a fallback recover from it locally; the
// orchestrator surfaces it only when no fallback exists.
type ConfigurationError struct {
	Subject string
	Detail  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Subject, e.Detail)
}

// ValidationError signals caller-supplied input outside the documented
// range. It is surfaced immediately and never retried.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

// LookupFailure wraps a failed external call (geocoder, flood service).
// Callers always recover with a degraded default and a provenance flag;
// this error never propagates out of the engine.
type LookupFailure struct {
	Service string
	Err     error
}

func (e *LookupFailure) Error() string {
	return fmt.Sprintf("%s lookup failed: %v", e.Service, e.Err)
}

func (e *LookupFailure) Unwrap() error { return e.Err }
