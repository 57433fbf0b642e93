package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NetworkError is a transport failure: dial, timeout, cancellation, broken body.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError means the session token is missing, rejected or expired.
type AuthError struct {
	Op     string
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ValidationError carries per-field messages; Fields is never empty.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ServerError is a non-zero envelope code, or a body that is not an envelope.
type ServerError struct {
	Op         string
	Code       int
	Message    string
	HTTPStatus int
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server error code=%d status=%d", e.Op, e.Code, e.HTTPStatus)
	}
	return fmt.Sprintf("%s: %s (code=%d)", e.Op, e.Message, e.Code)
}

// Surface tells the UI where an error should be shown.
type Surface int

const (
	SurfaceToast Surface = iota
	SurfaceInline
	SurfaceRedirect
)

func (s Surface) String() string {
	switch s {
	case SurfaceInline:
		return "inline"
	case SurfaceRedirect:
		return "redirect"
	default:
		return "toast"
	}
}

// Classify maps an error to its surface. Unknown errors are toasts.
func Classify(err error) Surface {
	var authErr *AuthError
	var valErr *ValidationError
	switch {
	case errors.As(err, &authErr):
		return SurfaceRedirect
	case errors.As(err, &valErr):
		return SurfaceInline
	default:
		return SurfaceToast
	}
}
