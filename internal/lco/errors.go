package lco

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork     = errors.New("network failure")
	ErrStatus      = errors.New("unexpected status code")
	ErrMalformed   = errors.New("malformed response")
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrSiteNotFound is the only error the repositories surface to callers.
	ErrSiteNotFound = errors.New("site not found")
)

// FetchKind classifies a failed outbound request.
type FetchKind string

const (
	KindNetwork     FetchKind = "network"
	KindStatus      FetchKind = "status"
	KindMalformed   FetchKind = "malformed"
	KindCircuitOpen FetchKind = "circuit_open"
)

// FetchError carries the cause of a failed request. It matches the sentinel
// for its kind as well as the underlying error under errors.Is.
type FetchError struct {
	URL        string
	Kind       FetchKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("GET %s: %s: %d", e.URL, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *FetchError) sentinel() error {
	switch e.Kind {
	case KindStatus:
		return ErrStatus
	case KindMalformed:
		return ErrMalformed
	case KindCircuitOpen:
		return ErrCircuitOpen
	default:
		return ErrNetwork
	}
}
