package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyValidatorAcceptsMintedToken(t *testing.T) {
	lv := NewLegacyValidator("legacy-shared-secret")

	token := lv.Mint("alice")
	subject, authErr := lv.Validate(token)
	require.Nil(t, authErr)
	assert.Equal(t, "alice", subject)
}

func TestLegacyValidatorRejectsWrongSecret(t *testing.T) {
	minter := NewLegacyValidator("old-secret")
	lv := NewLegacyValidator("new-secret")

	_, authErr := lv.Validate(minter.Mint("alice"))
	require.NotNil(t, authErr)
	assert.Equal(t, ReasonSignatureMismatch, authErr.Reason)
	assert.Equal(t, GenerationLegacy, authErr.Generation)
}

func TestLegacyValidatorRejectsMalformed(t *testing.T) {
	lv := NewLegacyValidator("legacy-shared-secret")

	for _, candidate := range []string{"no-separator", ":", "alice:", ":abcdef", "alice:not-hex"} {
		_, authErr := lv.Validate(candidate)
		require.NotNil(t, authErr, candidate)
		assert.Equal(t, ReasonMalformedToken, authErr.Reason, candidate)
	}
}

func TestLegacyValidatorDisabledWithoutSecret(t *testing.T) {
	lv := NewLegacyValidator("")
	assert.False(t, lv.Enabled())

	_, authErr := lv.Validate("alice:deadbeef")
	require.NotNil(t, authErr)
	assert.Equal(t, ReasonSignatureMismatch, authErr.Reason)
}
