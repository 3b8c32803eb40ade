package errors

// Helpers for classifying failures of outbound HTTP calls and deciding retry semantics

import (
	"context"
	stderrs "errors"
	"net"
	"net/http"
)

// Upstream maps a non-2xx status from a collaborator to an *Error.
// 429 keeps its meaning; everything else is the collaborator being unavailable to us
func Upstream(service string, status int) error {
	if status == http.StatusTooManyRequests {
		return &Error{code: ErrorCodeTooManyRequests, msg: service + ": rate limited", op: service}
	}
	return &Error{
		code: ErrorCodeUnavailable,
		msg:  service + ": upstream status " + http.StatusText(status),
		op:   service,
		orig: StatusError(status),
	}
}

// StatusError carries the raw upstream status so callers can inspect it
type StatusError int

func (s StatusError) Error() string { return http.StatusText(int(s)) }

// UpstreamStatus returns the upstream HTTP status wrapped in err, or 0
func UpstreamStatus(err error) int {
	var s StatusError
	if stderrs.As(err, &s) {
		return int(s)
	}
	if IsCode(err, ErrorCodeTooManyRequests) {
		return http.StatusTooManyRequests
	}
	return 0
}

// Retryable reports whether an outbound failure is worth another attempt:
// transport errors, 429 and 5xx. Local cancellation never is
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsCode(err, ErrorCodeTooManyRequests) {
		return true
	}
	if st := UpstreamStatus(err); st != 0 {
		return st >= 500
	}
	var ne net.Error
	if stderrs.As(err, &ne) {
		return true
	}
	var oe *net.OpError
	return stderrs.As(err, &oe)
}
