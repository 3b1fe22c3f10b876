package entities

import "errors"

// Error taxonomy shared by the gateway adapters and the orchestration
// facade. Adapters map raw provider failures into these before anything
// reaches a caller; configuration and validation errors are returned before
// any network call is attempted.
var (
	// ErrNotConfigured means the provider's credentials are absent.
	ErrNotConfigured = errors.New("gateway not configured")

	// ErrInvalidAmount means the amount is not positive or cannot be
	// represented in the provider's minor unit without precision loss.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidRequest covers malformed identifiers and payloads.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderRejected is a definitive 4xx from the provider. Not retried.
	ErrProviderRejected = errors.New("provider rejected request")

	// ErrProviderUnavailable is a timeout or 5xx. Retry is a caller decision;
	// the order stays non-terminal.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrVerificationFailed means a recomputed signature did not match the
	// caller-supplied one. Always rejected, never silently accepted.
	ErrVerificationFailed = errors.New("signature verification failed")

	// ErrWebhookSignatureInvalid means an inbound webhook could not be
	// authenticated; its payload must be discarded untouched.
	ErrWebhookSignatureInvalid = errors.New("webhook signature invalid")

	// ErrOrderNotFound means no PaymentOrder exists for the external id.
	ErrOrderNotFound = errors.New("payment order not found")

	// ErrOrderExists means an order with the external id is already stored.
	ErrOrderExists = errors.New("payment order already exists")

	// ErrIdempotencyConflict is resolved by returning the prior terminal
	// outcome; callers should not treat it as a failure.
	ErrIdempotencyConflict = errors.New("idempotency conflict")
)
