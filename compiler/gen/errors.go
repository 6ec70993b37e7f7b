package gen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("classflow/gen: invalid configuration")
	// ErrGenerationFailed is matched by every *GenerationError.
	ErrGenerationFailed = errors.New("classflow/gen: code generation failed")
)

// ConfigError reports a rejected generator setting.
type ConfigError struct {
	Option string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("classflow/gen: option %s: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("classflow/gen: option %s = %v: %s", e.Option, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// NewConfigError returns a ConfigError for the named option.
func NewConfigError(option string, value any, reason string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Reason: reason}
}

// Phase names the step of a generation run that failed.
type Phase string

const (
	PhaseEntity Phase = "entity"
	PhaseSource Phase = "source"
	PhaseWrite  Phase = "write"
)

// GenerationError reports a failure rendering or writing generated code.
// Unit is the file name or entity the failure concerns, if any.
type GenerationError struct {
	Phase Phase
	Unit  string
	Err   error
}

func (e *GenerationError) Error() string {
	msg := "classflow/gen: " + string(e.Phase)
	if e.Unit != "" {
		msg += " " + e.Unit
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError wraps err with the phase and unit it occurred in.
func NewGenerationError(phase Phase, unit string, err error) *GenerationError {
	return &GenerationError{Phase: phase, Unit: unit, Err: err}
}

// IsConfigError reports whether err holds a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsGenerationError reports whether err holds a *GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
