package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/auth"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/domain"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/events"
	apperrors "github.com/lifeexplorer230/mafclubscore-sub001/pkg/util"
)

// LoginResult is the artifact of a successful login: the signed token and
// the attributes the handler needs to deliver it.
type LoginResult struct {
	Subject   string
	Role      domain.Role
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates the login flow: throttle, credential check,
// token issuance and audit events.
type AuthService struct {
	verifier   *auth.CredentialVerifier
	tokens     *auth.TokenManager
	throttle   *LoginThrottle
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for AuthService.
type AuthDependencies struct {
	Verifier   *auth.CredentialVerifier
	Tokens     *auth.TokenManager
	Throttle   *LoginThrottle
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		verifier:   deps.Verifier,
		tokens:     deps.Tokens,
		throttle:   deps.Throttle,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Login authenticates a member and issues a session token. Unknown
// usernames and wrong passwords produce the identical error; only a store
// outage surfaces as a distinct, retryable condition.
func (s *AuthService) Login(ctx context.Context, username, password, clientIP string) (*LoginResult, error) {
	if !s.throttle.Allow(ctx, username, clientIP) {
		s.logger.Warn("login throttled", zap.String("username", username))
		return nil, apperrors.NewTooManyRequests("too many login attempts")
	}

	role, authErr := s.verifier.Verify(ctx, username, password)
	if authErr != nil {
		if authErr.Retryable() {
			s.logger.Error("credential store unavailable", zap.Error(authErr))
			return nil, apperrors.NewServiceUnavailable("authentication temporarily unavailable", authErr)
		}
		s.publish(ctx, events.NewLoginFailed(username, string(authErr.Reason)))
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(username, role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.NewLoginSucceeded(username, string(role)))
	return &LoginResult{Subject: username, Role: role, Token: token, ExpiresAt: expiresAt}, nil
}

// TokenManager exposes the underlying token manager for cookie handling.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
