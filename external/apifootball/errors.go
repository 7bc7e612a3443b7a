package apifootball

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// Kind classifies why a fetch did not produce a usable payload.
type Kind string

const (
	KindTimeout           Kind = "timeout"
	KindNetwork           Kind = "network"
	KindUnexpectedStatus  Kind = "unexpected_status"
	KindMalformedResponse Kind = "malformed_response"
)

var (
	ErrTimeout           = crerr.New("api-football request timed out")
	ErrNetwork           = crerr.New("api-football network failure")
	ErrUnexpectedStatus  = crerr.New("api-football unexpected status")
	ErrMalformedResponse = crerr.New("api-football malformed response")
)

// FetchError is returned for every failed call. errors.Is matches it
// against the sentinel of its kind.
type FetchError struct {
	Kind       Kind
	Resource   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: %s (status=%d): %v", e.Resource, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Resource, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrUnexpectedStatus:
		return e.Kind == KindUnexpectedStatus
	case ErrMalformedResponse:
		return e.Kind == KindMalformedResponse
	}
	return false
}

// transient reports failures that say something about the provider's
// health and therefore count towards the circuit breaker.
func (e *FetchError) transient() bool {
	switch e.Kind {
	case KindTimeout, KindNetwork:
		return true
	case KindUnexpectedStatus:
		return e.StatusCode == 429 || e.StatusCode >= 500
	}
	return false
}

func isBreakerFailure(err error) bool {
	var fetchErr *FetchError
	if crerr.As(err, &fetchErr) {
		return fetchErr.transient()
	}
	return false
}
