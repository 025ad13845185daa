package auth

import "fmt"

// Reason identifies why an authentication or authorization step failed.
type Reason string

const (
	ReasonInvalidCredentials   Reason = "INVALID_CREDENTIALS"
	ReasonStoreUnavailable     Reason = "STORE_UNAVAILABLE"
	ReasonMissingToken         Reason = "MISSING_TOKEN"
	ReasonMalformedToken       Reason = "MALFORMED_TOKEN"
	ReasonExpiredToken         Reason = "EXPIRED_TOKEN"
	ReasonSignatureMismatch    Reason = "SIGNATURE_MISMATCH"
	ReasonWrongTokenGeneration Reason = "WRONG_TOKEN_GENERATION"
	ReasonTokenVersionRevoked  Reason = "TOKEN_VERSION_REVOKED"
)

// Generation names which token scheme produced or validated a token.
type Generation string

const (
	GenerationNew    Generation = "new"
	GenerationLegacy Generation = "legacy"
	GenerationNone   Generation = "none"
)

// Error is the gateway's rejection type. It carries the specific reason and
// the generation that was attempted so logs and metrics can record them;
// callers at the HTTP boundary must collapse it to a generic unauthorized
// response.
type Error struct {
	Reason     Reason
	Generation Generation
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s (%s): %v", e.Reason, e.Generation, e.Err)
	}
	return fmt.Sprintf("auth: %s (%s)", e.Reason, e.Generation)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error for the given reason and generation.
func NewError(reason Reason, gen Generation, err error) *Error {
	return &Error{Reason: reason, Generation: gen, Err: err}
}

// Retryable reports whether the failure is a service-level condition the
// caller may retry, as opposed to an authorization rejection.
func (e *Error) Retryable() bool {
	return e.Reason == ReasonStoreUnavailable
}
