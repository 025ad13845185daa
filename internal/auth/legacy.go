package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// LegacyValidator validates bearer tokens minted by the prior auth scheme:
// an opaque "<subject>:<hex hmac-sha256>" string keyed on a shared secret.
// The format carries no timestamps, so legacy tokens do not expire; the
// migration-period bound is retiring the secret. Kept deliberately separate
// from TokenManager so it can be deleted wholesale once migration completes.
type LegacyValidator struct {
	secret []byte
}

// NewLegacyValidator builds a validator. An empty secret disables the
// adapter: every legacy candidate is rejected.
func NewLegacyValidator(secret string) *LegacyValidator {
	return &LegacyValidator{secret: []byte(secret)}
}

// Enabled reports whether a legacy secret is configured.
func (lv *LegacyValidator) Enabled() bool {
	return len(lv.secret) > 0
}

// Mint produces a legacy token for the subject. Retained for migration
// tooling and tests; the login path never issues legacy tokens.
func (lv *LegacyValidator) Mint(subject string) string {
	return subject + ":" + hex.EncodeToString(lv.digest(subject))
}

// Validate checks a legacy candidate and returns its subject. Malformed
// input is reported distinctly from a failed signature check.
func (lv *LegacyValidator) Validate(token string) (string, *Error) {
	if !lv.Enabled() {
		return "", NewError(ReasonSignatureMismatch, GenerationLegacy, errors.New("legacy scheme disabled"))
	}

	subject, sig, ok := strings.Cut(token, ":")
	if !ok || subject == "" || sig == "" {
		return "", NewError(ReasonMalformedToken, GenerationLegacy, errors.New("not a legacy token"))
	}

	sigBytes, err := hex.DecodeString(sig)
	if err != nil {
		return "", NewError(ReasonMalformedToken, GenerationLegacy, err)
	}

	if !hmac.Equal(sigBytes, lv.digest(subject)) {
		return "", NewError(ReasonSignatureMismatch, GenerationLegacy, nil)
	}
	return subject, nil
}

func (lv *LegacyValidator) digest(subject string) []byte {
	mac := hmac.New(sha256.New, lv.secret)
	mac.Write([]byte(subject))
	return mac.Sum(nil)
}
