package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"golang.org/x/oauth2"

	"relieflink/internal/config"
	"relieflink/internal/middleware"
)

// OIDCHandler handles the optional OIDC admin login flow. Authenticated
// identities must be on the configured admin allowlist; OIDC never grants
// admin access by itself.
type OIDCHandler struct {
	provider     *oidc.Provider
	oauth2Config oauth2.Config
	verifier     *oidc.IDTokenVerifier
	cfg          *config.Config
}

// NewOIDCHandler creates a new OIDC handler with provider discovery.
func NewOIDCHandler(ctx context.Context, cfg *config.Config) (*OIDCHandler, error) {
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, err
	}

	oauth2Config := oauth2.Config{
		ClientID:     cfg.OIDCClientID,
		ClientSecret: cfg.OIDCClientSecret,
		RedirectURL:  cfg.OIDCRedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})

	return &OIDCHandler{
		provider:     provider,
		oauth2Config: oauth2Config,
		verifier:     verifier,
		cfg:          cfg,
	}, nil
}

// Login initiates the OIDC login flow.
func (h *OIDCHandler) Login(c fiber.Ctx) error {
	state := generateState()

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	sess.Set("oauth_state", state)

	url := h.oauth2Config.AuthCodeURL(state)
	return c.Redirect().To(url)
}

// Callback handles the OIDC callback after authentication.
func (h *OIDCHandler) Callback(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	// Verify state
	savedState, _ := sess.Get("oauth_state").(string)
	if savedState == "" || savedState != c.Query("state") {
		return fiber.NewError(fiber.StatusBadRequest, "invalid state")
	}
	sess.Delete("oauth_state")

	// Exchange code for token
	oauth2Token, err := h.oauth2Config.Exchange(c.Context(), c.Query("code"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to exchange code")
	}

	// Extract and verify ID token
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing id_token")
	}

	idToken, err := h.verifier.Verify(c.Context(), rawIDToken)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id_token")
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return err
	}

	// Some providers only include minimal claims in the ID token; fall back
	// to the userinfo endpoint for the email.
	if claims.Email == "" {
		userInfo, err := h.provider.UserInfo(c.Context(), oauth2.StaticTokenSource(oauth2Token))
		if err == nil {
			claims.Email = userInfo.Email
		}
	}

	if !h.cfg.IsAdminEmail(claims.Email) {
		slog.Warn("OIDC login rejected: not on admin allowlist", "email", claims.Email)
		return fiber.NewError(fiber.StatusForbidden, "account is not authorized for administration")
	}

	sess.Set(middleware.SessionKeyIsAdmin, true)
	sess.Set(middleware.SessionKeyAdminUser, claims.Email)

	return c.Redirect().To("/api/auth/status")
}

// Logout destroys the session and redirects to the public surface.
func (h *OIDCHandler) Logout(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess != nil {
		sess.Destroy()
	}
	return c.Redirect().To("/")
}

// generateState creates a random state value for the OAuth2 flow.
func generateState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
