package engine

import (
	"errors"
	"fmt"
)

// Kind classifies a provider-side failure. Adapters classify each upstream
// fault exactly once, at the boundary; everything above the boundary switches
// on Kind and never inspects raw upstream error text.
type Kind string

const (
	KindInvalidFormat         Kind = "InvalidFormat"
	KindUnsupportedIdentifier Kind = "UnsupportedIdentifierForm"
	KindNotFound              Kind = "NotFound"
	KindForbidden             Kind = "Forbidden"
	KindCommentsDisabled      Kind = "CommentsDisabled"
	KindBlocked               Kind = "Blocked"
	KindAgeRestricted         Kind = "AgeRestricted"
	KindUnplayable            Kind = "Unplayable"
	KindMalformedDuration     Kind = "MalformedDuration"
	KindMalformedResponse     Kind = "MalformedUpstreamResponse"
	KindQuotaExceeded         Kind = "QuotaExceeded"
)

// FetchError is a typed provider failure.
type FetchError struct {
	Kind   Kind
	Detail string
}

func (e *FetchError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}

// Errf builds a FetchError with a formatted detail message.
func Errf(kind Kind, format string, args ...any) *FetchError {
	return &FetchError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or "" if err carries no FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Reason renders err as a machine-readable failure reason: the Kind name for
// typed failures, the plain error message otherwise.
func Reason(err error) string {
	if k := KindOf(err); k != "" {
		return string(k)
	}
	return err.Error()
}

// Detail returns a human-readable description of err: the detail message of a
// typed failure when present, the error message otherwise.
func Detail(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) && fe.Detail != "" {
		return fe.Detail
	}
	return err.Error()
}
