package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/domain"
)

// SessionCookieName is the only supported carrier for new-scheme tokens.
const SessionCookieName = "mcs_session"

// DefaultTokenTTL bounds the blast radius of a leaked session token.
const DefaultTokenTTL = 30 * time.Minute

// TokenManager issues and validates new-scheme session tokens. Tokens are
// self-contained HS256 JWTs; no server-side session state exists. The secret
// and accepted token version are fixed at construction and safe for
// concurrent use.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	version int
}

// NewTokenManager builds a manager for the given signing secret, TTL and
// accepted token version.
func NewTokenManager(secret string, ttl time.Duration, version int) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, version: version}
}

// SessionClaims is the signed payload of a new-scheme token.
type SessionClaims struct {
	Role         domain.Role `json:"role"`
	TokenVersion int         `json:"tkv"`
	jwt.RegisteredClaims
}

// Issue builds and signs a session token for the subject.
func (tm *TokenManager) Issue(username string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &SessionClaims{
		Role:         role,
		TokenVersion: tm.version,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Cookie wraps a signed token in the session cookie. HttpOnly, Secure and
// SameSite=Strict are a hard contract on every issuance.
func (tm *TokenManager) Cookie(token string, expiresAt time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// ExpiredCookie returns a cookie that clears the session on the client.
func (tm *TokenManager) ExpiredCookie() *fiber.Cookie {
	cookie := tm.Cookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	return cookie
}

// Validate parses and verifies a new-scheme token, mapping library failures
// onto the gateway's reason taxonomy.
func (tm *TokenManager) Validate(tokenStr string) (*SessionClaims, *Error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, NewError(ReasonMalformedToken, GenerationNew, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, NewError(ReasonExpiredToken, GenerationNew, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, NewError(ReasonSignatureMismatch, GenerationNew, err)
		default:
			return nil, NewError(ReasonMalformedToken, GenerationNew, err)
		}
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, NewError(ReasonMalformedToken, GenerationNew, errors.New("invalid token claims"))
	}
	if claims.TokenVersion != tm.version {
		return nil, NewError(ReasonTokenVersionRevoked, GenerationNew, nil)
	}
	return claims, nil
}
