package apperrors

import "errors"

// Validation errors are caused by malformed requests. They are surfaced to the
// caller as 400 Bad Request and are never retried.
var (
	// ErrInvalidMode indicates a mode outside the closed set efficient/optimized.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrNegativeIterations indicates an algorithm was asked for a negative term or digit count.
	ErrNegativeIterations = errors.New("iteration count cannot be negative")
)

// Authorization errors are produced by the access gate and surfaced as 401 Unauthorized.
var (
	// ErrUnauthorized indicates the access gate denied the request.
	ErrUnauthorized = errors.New("unauthorized")
)

// Computation errors are arithmetic failures inside a convergence algorithm.
// They are surfaced as 500 Internal Server Error. The state store is never
// updated when one occurs.
var (
	// ErrComputation wraps any failure raised while computing an approximation.
	ErrComputation = errors.New("failed to compute π")
)

// Persistence errors describe a durable backing that is unreachable or erroring.
// They are recovered locally by falling back to the in-memory cache, logged,
// and never surfaced to the caller.
var (
	// ErrPersistence wraps any failure reported by the durable store.
	ErrPersistence = errors.New("durable store failure")

	// ErrPersistenceUnavailable indicates persistence is disabled or not configured.
	ErrPersistenceUnavailable = errors.New("durable store unavailable")

	// ErrCorruptState indicates a persisted record could not be decoded.
	ErrCorruptState = errors.New("persisted state is corrupt")
)

// Operation failure errors.
var (
	// ErrFailedToGetVersionInfo indicates the version endpoint could not be served.
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")

	// ErrFailedToDumpState indicates the debug dump could not be assembled.
	ErrFailedToDumpState = errors.New("failed to dump state")
)
