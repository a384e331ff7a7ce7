package serverutils

import (
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes-be/internal/config"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", JwtMiddleware(secret), func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	app := protectedApp("test-secret")

	userId := "2f3a8f0e-8a50-4f52-b6ff-5f1a1df5a001"

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name: "valid token",
			authHeader: "Bearer " + signToken(t, "test-secret", jwt.MapClaims{
				"user_id": userId,
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: "Bearer " + signToken(t, "test-secret", jwt.MapClaims{
				"user_id": userId,
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			authHeader: "Bearer " + signToken(t, "other-secret", jwt.MapClaims{
				"user_id": userId,
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name: "missing user_id claim",
			authHeader: "Bearer " + signToken(t, "test-secret", jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

// A token signed with the config-resolved secret must pass the guard
// built from that same config, whether JWT_SECRET is set or left to
// the fallback. Mint and verify share exactly one source of truth.
func TestJwtMiddlewareRoundTripWithConfigSecret(t *testing.T) {
	userId := "9c4f7de2-11ab-4a6d-8f1e-3a7b2c9d0e44"

	tests := []struct {
		name  string
		setup func(t *testing.T)
	}{
		{
			name: "JWT_SECRET unset falls back",
			setup: func(t *testing.T) {
				t.Setenv("JWT_SECRET", "")
				os.Unsetenv("JWT_SECRET")
			},
		},
		{
			name: "JWT_SECRET set",
			setup: func(t *testing.T) {
				t.Setenv("JWT_SECRET", "round-trip-secret")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			cfg := config.Load()

			token := signToken(t, cfg.Auth.JwtSecret, jwt.MapClaims{
				"user_id": userId,
				"exp":     time.Now().Add(time.Hour).Unix(),
			})

			app := protectedApp(cfg.Auth.JwtSecret)
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		})
	}
}
