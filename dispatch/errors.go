package dispatch

import (
	"fmt"
	"strings"
)

// InvalidInvocationError reports a malformed host argument vector. The
// dispatch is aborted before any handler runs.
type InvalidInvocationError struct {
	Reason string
}

func (e *InvalidInvocationError) Error() string {
	return fmt.Sprintf("invalid invocation: %s", e.Reason)
}

// DuplicateRouteError reports a second registration deriving an already
// registered canonical path. Two handlers must never silently shadow each
// other.
type DuplicateRouteError struct {
	Path string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("encountered duplicate route: '%s'", e.Path)
}

// MissingEntryPointError reports a handler that exposes no usable entry
// point for its declared response kind. Raised at registration time so
// broken routes are caught before any invocation.
type MissingEntryPointError struct {
	Path   string
	Kind   Kind
	Reason string
}

func (e *MissingEntryPointError) Error() string {
	return fmt.Sprintf("route '%s' has no usable %s entry point: %s", e.Path, e.Kind, e.Reason)
}

// UnknownRouteError reports a dispatch to a selector no handler was
// registered for.
type UnknownRouteError struct {
	Path string
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("no route registered for path: '%s'", e.Path)
}

// EmptyResultError reports a folder handler that produced no directory
// entries. An empty listing is a handler bug; the host has no way to
// render nothing.
type EmptyResultError struct {
	Path string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("folder route '%s' returned no listitems", e.Path)
}

// Resolution failure reasons.
const (
	ReasonNoSource      = "resolver failed to return a source"
	ReasonInvalidSource = "resolver returned an invalid source"
)

// ResolutionError reports a resolver handler result that could not be
// turned into a playable reference.
type ResolutionError struct {
	Reason string
	Shape  string
}

func (e *ResolutionError) Error() string {
	if e.Shape != "" {
		return fmt.Sprintf("%s: '%s'", e.Reason, e.Shape)
	}
	return e.Reason
}

// NewNoSourceError creates a ResolutionError for a falsy resolver result.
func NewNoSourceError() *ResolutionError {
	return &ResolutionError{Reason: ReasonNoSource}
}

// NewInvalidSourceError creates a ResolutionError for a resolver result of
// an unsupported shape.
func NewInvalidSourceError(shape string) *ResolutionError {
	return &ResolutionError{Reason: ReasonInvalidSource, Shape: shape}
}

// errorName returns the bare type name of err, the short name surfaced in
// host notifications.
func errorName(err error) string {
	name := fmt.Sprintf("%T", err)
	name = strings.TrimPrefix(name, "*")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
