package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/domain"
)

func expiredClaims(subject string) *SessionClaims {
	return &SessionClaims{
		Role:         domain.RolePlayer,
		TokenVersion: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
}

func newTestGateway(mode MigrationMode) (*Gateway, *TokenManager, *LegacyValidator) {
	tokens := NewTokenManager(testSecret, 30*time.Minute, 1)
	legacy := NewLegacyValidator("legacy-shared-secret")
	return NewGateway(mode, tokens, legacy), tokens, legacy
}

func TestDetectKind(t *testing.T) {
	tokens := NewTokenManager(testSecret, 30*time.Minute, 1)
	newToken, _, err := tokens.Issue("alice", domain.RolePlayer)
	require.NoError(t, err)

	legacy := NewLegacyValidator("legacy-shared-secret")

	assert.Equal(t, KindNew, DetectKind(newToken))
	assert.Equal(t, KindLegacy, DetectKind(legacy.Mint("alice")))
	assert.Equal(t, KindUnknown, DetectKind("garbage"))
}

func TestAuthorizeMissingToken(t *testing.T) {
	for _, mode := range []MigrationMode{ModeOff, ModeShadow, ModeOn} {
		gw, _, _ := newTestGateway(mode)
		_, authErr := gw.Authorize("")
		require.NotNil(t, authErr, mode)
		assert.Equal(t, ReasonMissingToken, authErr.Reason, mode)
	}
}

func TestAuthorizeModeOn(t *testing.T) {
	gw, tokens, legacy := newTestGateway(ModeOn)

	newToken, _, err := tokens.Issue("alice", domain.RoleAdmin)
	require.NoError(t, err)

	principal, authErr := gw.Authorize(newToken)
	require.Nil(t, authErr)
	assert.Equal(t, "alice", principal.Subject)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
	assert.Equal(t, GenerationNew, principal.Generation)

	_, authErr = gw.Authorize(legacy.Mint("bob"))
	require.NotNil(t, authErr)
	assert.Equal(t, ReasonWrongTokenGeneration, authErr.Reason)
	assert.Equal(t, GenerationNew, authErr.Generation)
}

func TestAuthorizeModeOff(t *testing.T) {
	gw, tokens, legacy := newTestGateway(ModeOff)

	principal, authErr := gw.Authorize(legacy.Mint("bob"))
	require.Nil(t, authErr)
	assert.Equal(t, "bob", principal.Subject)
	assert.Equal(t, LegacyRole, principal.Role)
	assert.Equal(t, GenerationLegacy, principal.Generation)

	// A perfectly valid new-scheme token is still the wrong generation.
	newToken, _, err := tokens.Issue("alice", domain.RolePlayer)
	require.NoError(t, err)
	_, authErr = gw.Authorize(newToken)
	require.NotNil(t, authErr)
	assert.Equal(t, ReasonWrongTokenGeneration, authErr.Reason)
	assert.Equal(t, GenerationLegacy, authErr.Generation)
}

func TestAuthorizeModeShadowAcceptsBothGenerations(t *testing.T) {
	gw, tokens, legacy := newTestGateway(ModeShadow)

	newToken, _, err := tokens.Issue("alice", domain.RoleModerator)
	require.NoError(t, err)

	principal, authErr := gw.Authorize(newToken)
	require.Nil(t, authErr)
	assert.Equal(t, "alice", principal.Subject)
	assert.Equal(t, GenerationNew, principal.Generation)

	principal, authErr = gw.Authorize(legacy.Mint("bob"))
	require.Nil(t, authErr)
	assert.Equal(t, "bob", principal.Subject)
	assert.Equal(t, GenerationLegacy, principal.Generation)
}

func TestAuthorizeModeShadowRejectsInvalidOfEitherKind(t *testing.T) {
	gw, _, _ := newTestGateway(ModeShadow)

	otherLegacy := NewLegacyValidator("some-other-secret")
	_, authErr := gw.Authorize(otherLegacy.Mint("bob"))
	require.NotNil(t, authErr)
	assert.Equal(t, ReasonSignatureMismatch, authErr.Reason)
	assert.Equal(t, GenerationLegacy, authErr.Generation)

	otherTokens := NewTokenManager("some-other-secret", 30*time.Minute, 1)
	badNew, _, err := otherTokens.Issue("alice", domain.RolePlayer)
	require.NoError(t, err)
	_, authErr = gw.Authorize(badNew)
	require.NotNil(t, authErr)
	assert.Equal(t, ReasonSignatureMismatch, authErr.Reason)
	assert.Equal(t, GenerationNew, authErr.Generation)

	_, authErr = gw.Authorize("complete garbage")
	require.NotNil(t, authErr)
	assert.Equal(t, ReasonMalformedToken, authErr.Reason)
}

func TestAuthorizeModeOnExpired(t *testing.T) {
	gw, _, _ := newTestGateway(ModeOn)

	expired := signTestToken(t, testSecret, expiredClaims("alice"))
	_, authErr := gw.Authorize(expired)
	require.NotNil(t, authErr)
	assert.Equal(t, ReasonExpiredToken, authErr.Reason)
}
