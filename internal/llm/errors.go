package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a failed completion call.
type Kind int

const (
	KindOther Kind = iota
	KindRateLimited
	KindQuotaExceeded
	KindUnauthorized
	KindServerError
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindUnauthorized:
		return "unauthorized"
	case KindServerError:
		return "server_error"
	default:
		return "other"
	}
}

// Error is what provider adapters return when the API call fails.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindOther when err did not come from a
// provider adapter.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// kindForStatus maps an HTTP status (and the provider's error code, if any)
// to a Kind.
func kindForStatus(status int, code string) Kind {
	switch {
	case status == 429 && code == "insufficient_quota":
		return KindQuotaExceeded
	case status == 429:
		return KindRateLimited
	case status == 401:
		return KindUnauthorized
	case status >= 500:
		return KindServerError
	default:
		return KindOther
	}
}
