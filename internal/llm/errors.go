package llm

import (
	"fmt"
	"time"
)

// Kind classifies provider failures.
type Kind int

const (
	// KindUnavailable covers network errors and 5xx responses.
	KindUnavailable Kind = iota
	KindRateLimited
	// KindInvalidOutput means the reply was not valid JSON or failed the
	// schema.
	KindInvalidOutput
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidOutput:
		return "invalid output"
	case KindTruncated:
		return "truncated"
	}
	return "unavailable"
}

// Error is returned by every provider in this package.
type Error struct {
	Kind     Kind
	Provider string
	// RetryAfter is set for rate limits when the provider says how long
	// to wait.
	RetryAfter time.Duration
	// Body holds the offending reply for KindInvalidOutput.
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status from a provider SDK error.
func classifyStatus(provider string, status int, err error) error {
	kind := KindUnavailable
	if status == 429 {
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Provider: provider, Err: err}
}
