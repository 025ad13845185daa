package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/domain"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/repository"
)

// DefaultStoreTimeout bounds the credential store lookup so an outage
// degrades to a retryable error instead of hanging the login request.
const DefaultStoreTimeout = 3 * time.Second

// dummyHash is compared against when the username is unknown, so the
// unknown-user and wrong-password paths take comparable time.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// CredentialVerifier checks submitted credentials against the user store.
// Unknown usernames and wrong passwords are indistinguishable to callers.
type CredentialVerifier struct {
	users   repository.UserRepository
	timeout time.Duration
}

// NewCredentialVerifier builds a verifier with a bounded store timeout.
func NewCredentialVerifier(users repository.UserRepository, timeout time.Duration) *CredentialVerifier {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &CredentialVerifier{users: users, timeout: timeout}
}

// Verify checks a username/password pair and returns the stored role.
// The plaintext password is never logged or retained.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (domain.Role, *Error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	user, err := v.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = ComparePassword(dummyHash, password)
			return "", NewError(ReasonInvalidCredentials, GenerationNone, nil)
		}
		return "", NewError(ReasonStoreUnavailable, GenerationNone, err)
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return "", NewError(ReasonInvalidCredentials, GenerationNone, nil)
	}
	return user.Role, nil
}
