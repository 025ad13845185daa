package auth

import (
	"errors"
	"strings"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/domain"
)

// TokenKind is the structural shape of a candidate token, independent of
// which validation path the migration mode selects.
type TokenKind int

const (
	KindUnknown TokenKind = iota
	KindNew
	KindLegacy
)

// DetectKind classifies a candidate by shape: new-scheme tokens are JWTs
// (two dots, no colon), legacy tokens are "<subject>:<hex>" strings.
func DetectKind(token string) TokenKind {
	if strings.Contains(token, ":") {
		return KindLegacy
	}
	if strings.Count(token, ".") == 2 {
		return KindNew
	}
	return KindUnknown
}

// Principal is the identity context an accepted request carries. Downstream
// handlers use Subject and Role; Generation exists for observability only.
type Principal struct {
	Subject    string
	Role       domain.Role
	Generation Generation
}

// LegacyRole is assigned to principals validated by the legacy adapter,
// whose tokens predate the role claim.
const LegacyRole = domain.RolePlayer

// Gateway is the per-request authorization decision point. All state is
// immutable after construction, so Authorize is safe for arbitrary
// concurrent use and performs no I/O: validity is a pure function of the
// candidate token, the signing material and the current time.
type Gateway struct {
	mode   MigrationMode
	tokens *TokenManager
	legacy *LegacyValidator
}

// NewGateway wires the decision point for the resolved migration mode.
func NewGateway(mode MigrationMode, tokens *TokenManager, legacy *LegacyValidator) *Gateway {
	return &Gateway{mode: mode, tokens: tokens, legacy: legacy}
}

// Mode returns the migration mode the gateway was resolved with.
func (g *Gateway) Mode() MigrationMode {
	return g.mode
}

// Authorize decides whether a candidate token grants access. The returned
// Error carries the specific reason for logs and metrics; HTTP responses
// must collapse it to a generic unauthorized status.
func (g *Gateway) Authorize(candidate string) (*Principal, *Error) {
	if candidate == "" {
		return nil, NewError(ReasonMissingToken, GenerationNone, nil)
	}

	kind := DetectKind(candidate)

	switch g.mode {
	case ModeOn:
		if kind == KindLegacy {
			return nil, NewError(ReasonWrongTokenGeneration, GenerationNew, errors.New("legacy token while migration is complete"))
		}
		claims, err := g.tokens.Validate(candidate)
		if err != nil {
			return nil, err
		}
		return &Principal{Subject: claims.Subject, Role: claims.Role, Generation: GenerationNew}, nil

	case ModeShadow:
		// Dual-accept rollover: try the new scheme first, fall back to
		// legacy. On double failure, report the error from the path
		// matching the token's shape.
		claims, newErr := g.tokens.Validate(candidate)
		if newErr == nil {
			return &Principal{Subject: claims.Subject, Role: claims.Role, Generation: GenerationNew}, nil
		}
		subject, legacyErr := g.legacy.Validate(candidate)
		if legacyErr == nil {
			return &Principal{Subject: subject, Role: LegacyRole, Generation: GenerationLegacy}, nil
		}
		if kind == KindLegacy {
			return nil, legacyErr
		}
		return nil, newErr

	default: // ModeOff, and anything unresolved fails closed to it.
		if kind == KindNew {
			return nil, NewError(ReasonWrongTokenGeneration, GenerationLegacy, errors.New("new-scheme token while migration is off"))
		}
		subject, err := g.legacy.Validate(candidate)
		if err != nil {
			return nil, err
		}
		return &Principal{Subject: subject, Role: LegacyRole, Generation: GenerationLegacy}, nil
	}
}
