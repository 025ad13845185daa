package auth_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/lifeexplorer230/mafclubscore-sub001/internal/api/http"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/auth"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/domain"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/observability"
)

const testSecret = "test-signing-secret"

type protectedApp struct {
	app    *fiber.App
	tokens *auth.TokenManager
	legacy *auth.LegacyValidator
}

func newProtectedApp(t *testing.T, mode auth.MigrationMode) *protectedApp {
	t.Helper()

	tokens := auth.NewTokenManager(testSecret, 30*time.Minute, 1)
	legacy := auth.NewLegacyValidator("legacy-shared-secret")
	gateway := auth.NewGateway(mode, tokens, legacy)
	metrics := observability.NewMetrics()
	middleware := auth.NewMiddleware(gateway, zap.NewNop(), metrics, nil)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	app.Get("/protected", middleware.Handle, func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusInternalServerError, "principal missing")
		}
		return c.JSON(fiber.Map{"subject": principal.Subject, "generation": string(principal.Generation)})
	})

	return &protectedApp{app: app, tokens: tokens, legacy: legacy}
}

func (p *protectedApp) request(t *testing.T, configure func(*http.Request)) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if configure != nil {
		configure(req)
	}
	resp, err := p.app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestMiddlewareAcceptsCookieCarrier(t *testing.T) {
	p := newProtectedApp(t, auth.ModeOn)
	token, _, err := p.tokens.Issue("alice", domain.RolePlayer)
	require.NoError(t, err)

	resp, body := p.request(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"subject":"alice"`)
	assert.Contains(t, body, `"generation":"new"`)
}

func TestMiddlewareAcceptsBearerCarrier(t *testing.T) {
	p := newProtectedApp(t, auth.ModeOff)

	resp, body := p.request(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+p.legacy.Mint("bob"))
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"subject":"bob"`)
	assert.Contains(t, body, `"generation":"legacy"`)
}

func TestMiddlewareCookieTakesPrecedenceOverHeader(t *testing.T) {
	p := newProtectedApp(t, auth.ModeShadow)
	token, _, err := p.tokens.Issue("alice", domain.RolePlayer)
	require.NoError(t, err)

	resp, body := p.request(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
		req.Header.Set("Authorization", "Bearer "+p.legacy.Mint("bob"))
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"subject":"alice"`)
}

func TestMiddlewareRejectionsAreUniformAtTheBoundary(t *testing.T) {
	p := newProtectedApp(t, auth.ModeOff)
	newToken, _, err := p.tokens.Issue("alice", domain.RolePlayer)
	require.NoError(t, err)

	respMissing, bodyMissing := p.request(t, nil)
	assert.Equal(t, http.StatusUnauthorized, respMissing.StatusCode)

	respWrongGen, bodyWrongGen := p.request(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: newToken})
	})
	assert.Equal(t, http.StatusUnauthorized, respWrongGen.StatusCode)

	respBadSig, bodyBadSig := p.request(t, func(req *http.Request) {
		other := auth.NewLegacyValidator("some-other-secret")
		req.Header.Set("Authorization", "Bearer "+other.Mint("bob"))
	})
	assert.Equal(t, http.StatusUnauthorized, respBadSig.StatusCode)

	// The response body must not leak which validation path failed.
	assert.Equal(t, bodyMissing, bodyWrongGen)
	assert.Equal(t, bodyMissing, bodyBadSig)
}

func TestMiddlewareRecordsDecisionMetrics(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, 30*time.Minute, 1)
	legacy := auth.NewLegacyValidator("legacy-shared-secret")
	gateway := auth.NewGateway(auth.ModeOn, tokens, legacy)
	metrics := observability.NewMetrics()
	middleware := auth.NewMiddleware(gateway, zap.NewNop(), metrics, nil)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	app.Get("/protected", middleware.Handle, func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	token, _, err := tokens.Issue("alice", domain.RolePlayer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	_, err = app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), metrics.AuthDecisionCount("new", "accepted"))
}
