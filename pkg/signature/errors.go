// errors.go — Error taxonomy for signature generation.
package signature

import "fmt"

// ValidationError reports that a single input field failed its contract.
// It is always recoverable: the caller re-prompts or highlights the field.
type ValidationError struct {
	Field  string // field that failed ("email", "phone", ...)
	Value  string // the rejected raw value
	Reason string // human-readable explanation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Reason)
}

// RenderError reports a failure while resolving fonts, decoding the logo,
// or compositing. It aborts the current render only; nothing partially
// drawn is ever returned.
type RenderError struct {
	Op  string // the rendering operation that failed
	Err error  // underlying cause
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("rendering failed during %s", e.Op)
	}
	return fmt.Sprintf("rendering failed during %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ConfigError reports a malformed or out-of-range configuration value.
// It is fatal at startup: the engine must not run on a partial config.
type ConfigError struct {
	Key string // configuration key, empty for document-level failures
	Err error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration value for %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
