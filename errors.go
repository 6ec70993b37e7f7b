package classflow

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for the classflow error taxonomy.
var (
	// ErrNotFound is returned when a requested entity or relationship does not exist.
	ErrNotFound = errors.New("classflow: not found")

	// ErrRejectedRelationship is returned when a relationship fails validation.
	// It is never fatal: the caller is left with no relationship created.
	ErrRejectedRelationship = errors.New("classflow: relationship rejected")

	// ErrInvalidIndex is returned when a member operation references an index
	// outside the current bounds. It signals a contract violation by the caller.
	ErrInvalidIndex = errors.New("classflow: invalid member index")

	// ErrParse is returned (or collected) when source text cannot be matched.
	ErrParse = errors.New("classflow: parse failure")

	// ErrExternalService is returned when the code execution service fails.
	ErrExternalService = errors.New("classflow: external service failure")
)

// NotFoundError represents an error when an entity or relationship is not found.
type NotFoundError struct {
	label string
	id    string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != "" {
		return fmt.Sprintf("classflow: %s not found (id=%s)", e.label, e.id)
	}
	return fmt.Sprintf("classflow: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the label of the missing object ("entity", "relationship").
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the id that was searched for.
func (e *NotFoundError) ID() string {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given label and id.
func NewNotFoundError(label, id string) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// RejectedRelationshipError represents a relationship that failed one of the
// legality checks (self-loop, enum restriction, duplicate, kind mismatch).
type RejectedRelationshipError struct {
	Source string // Source entity id
	Target string // Target entity id
	Kind   string // Relationship kind, empty when rejected before selection
	Reason string // Human-readable reason
	Cause  error  // Underlying rule decision, if any
}

// Error returns the error string.
func (e *RejectedRelationshipError) Error() string {
	var b strings.Builder
	b.WriteString("classflow: relationship rejected")
	if e.Kind != "" {
		b.WriteString(" (")
		b.WriteString(e.Kind)
		b.WriteString(")")
	}
	if e.Source != "" || e.Target != "" {
		fmt.Fprintf(&b, " %s -> %s", e.Source, e.Target)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RejectedRelationshipError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrRejectedRelationship.
func (e *RejectedRelationshipError) Is(target error) bool {
	return target == ErrRejectedRelationship
}

// NewRejectedRelationshipError returns a new RejectedRelationshipError.
func NewRejectedRelationshipError(source, target, kind, reason string, cause error) *RejectedRelationshipError {
	return &RejectedRelationshipError{
		Source: source,
		Target: target,
		Kind:   kind,
		Reason: reason,
		Cause:  cause,
	}
}

// IsRejectedRelationship returns true if the error is a RejectedRelationshipError.
func IsRejectedRelationship(err error) bool {
	if err == nil {
		return false
	}
	var e *RejectedRelationshipError
	return errors.As(err, &e) || errors.Is(err, ErrRejectedRelationship)
}

// InvalidIndexError represents a member operation with an out-of-range index.
type InvalidIndexError struct {
	Entity string // Entity id or name
	Member string // "property", "method" or "parameter"
	Index  int    // Requested index
	Len    int    // Length of the sequence at the time of the call
}

// Error returns the error string.
func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("classflow: %s index %d out of range [0,%d) on %s", e.Member, e.Index, e.Len, e.Entity)
}

// Is reports whether the target matches ErrInvalidIndex.
func (e *InvalidIndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// NewInvalidIndexError returns a new InvalidIndexError.
func NewInvalidIndexError(entity, member string, index, length int) *InvalidIndexError {
	return &InvalidIndexError{Entity: entity, Member: member, Index: index, Len: length}
}

// IsInvalidIndex returns true if the error is an InvalidIndexError.
func IsInvalidIndex(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidIndexError
	return errors.As(err, &e)
}

// ParseError describes a fragment of source text the parser could not match.
type ParseError struct {
	Snippet string // Offending fragment, truncated
	Message string
}

// Error returns the error string.
func (e *ParseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("classflow: parse failure: %s: %q", e.Message, e.Snippet)
	}
	return fmt.Sprintf("classflow: parse failure: %s", e.Message)
}

// Is reports whether the target matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError returns a new ParseError. Snippets longer than 60 bytes are truncated.
func NewParseError(snippet, message string) *ParseError {
	if len(snippet) > 60 {
		snippet = snippet[:60] + "..."
	}
	return &ParseError{Snippet: snippet, Message: message}
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	if err == nil {
		return false
	}
	var e *ParseError
	return errors.As(err, &e)
}

// ExternalServiceError wraps a failure of the remote execution service,
// either at the transport level or reported in its response payload.
type ExternalServiceError struct {
	Service string // Service name, e.g. "runner"
	Status  int    // HTTP status, 0 if the request never completed
	Message string
	Cause   error
}

// Error returns the error string.
func (e *ExternalServiceError) Error() string {
	var b strings.Builder
	b.WriteString("classflow: ")
	b.WriteString(e.Service)
	b.WriteString(" failed")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrExternalService.
func (e *ExternalServiceError) Is(target error) bool {
	return target == ErrExternalService
}

// NewExternalServiceError returns a new ExternalServiceError.
func NewExternalServiceError(service string, status int, message string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Status: status, Message: message, Cause: cause}
}

// IsExternalServiceError returns true if the error is an ExternalServiceError.
func IsExternalServiceError(err error) bool {
	if err == nil {
		return false
	}
	var e *ExternalServiceError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "classflow: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("classflow: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors so errors.Is and errors.As inspect each.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
