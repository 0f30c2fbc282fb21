// Package storeerr defines the small taxonomy the repositories map raw
// store failures into. Callers branch on these sentinels with errors.Is
// and never see driver-specific error types.
package storeerr

import "errors"

var (
	// ErrConditionFailed means a conditional write's predicate did not
	// hold. Repositories translate this further into their own domain
	// sentinels (order.ErrNoMatch, product.ErrInsufficientStock, ...).
	ErrConditionFailed = errors.New("store: condition failed")

	// ErrThrottled means the store rejected the request under load.
	// Retryable; this layer does not retry.
	ErrThrottled = errors.New("store: throttled")

	// ErrUnavailable means the store could not be reached at all.
	ErrUnavailable = errors.New("store: unavailable")

	// ErrMalformed means the request itself was rejected as invalid.
	ErrMalformed = errors.New("store: malformed request")

	// ErrInternal covers everything else, including missing collections.
	ErrInternal = errors.New("store: internal error")
)

// Retryable reports whether the failure is transient and worth retrying
// upstream. Retry policy belongs to the caller, not the repositories.
func Retryable(err error) bool {
	return errors.Is(err, ErrThrottled) || errors.Is(err, ErrUnavailable)
}
