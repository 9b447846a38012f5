package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"study-deck/internal/dto"
	"study-deck/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockAuthService implements service.AuthService for middleware tests.
type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) GetGoogleLoginURL(state string) string {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (string, *dto.GoogleUserInfo, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) CreateJWT(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	panic("not implemented in mock")
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func validatorFor(t *testing.T) *ManualMockAuthService {
	return &ManualMockAuthService{
		ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			switch tokenString {
			case "valid_access_token":
				return &dto.AuthClaims{UserID: "user123", TokenType: "access", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}, nil
			case "valid_refresh_token":
				return &dto.AuthClaims{UserID: "user456", TokenType: "refresh"}, nil
			}
			return nil, errors.New("invalid token")
		},
	}
}

func TestOptionalAuth(t *testing.T) {
	tests := []struct {
		name                string
		authHeader          string
		expectedUserIDLocal interface{}
	}{
		{"No Auth Header", "", nil},
		{"Valid Access Token", "Bearer valid_access_token", "user123"},
		{"Invalid Token", "Bearer invalid_token", nil},
		{"Refresh Token instead of Access", "Bearer valid_refresh_token", nil},
		{"Malformed Auth Header - No Bearer", "Basic some_token", nil},
		{"Malformed Auth Header - Bearer No Token", "Bearer ", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			nextHandlerCalled := false
			var userIDLocalValue interface{}

			app.Get("/test_optional_auth", middleware.OptionalAuth(validatorFor(t)), func(c *fiber.Ctx) error {
				nextHandlerCalled = true
				userIDLocalValue = c.Locals(middleware.UserIDKey)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/test_optional_auth", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.True(t, nextHandlerCalled, "Next handler was not called")
			assert.Equal(t, tc.expectedUserIDLocal, userIDLocalValue, "UserID in Ctx.Locals mismatch")
		})
	}
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID string
	}{
		{"No Auth Header", "", fiber.StatusUnauthorized, ""},
		{"Valid Access Token", "Bearer valid_access_token", fiber.StatusOK, "user123"},
		{"Invalid Token", "Bearer invalid_token", fiber.StatusUnauthorized, ""},
		{"Refresh Token", "Bearer valid_refresh_token", fiber.StatusUnauthorized, ""},
		{"Wrong Scheme", "Basic abc", fiber.StatusUnauthorized, ""},
		{"Empty Token", "Bearer ", fiber.StatusUnauthorized, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/protected", middleware.Protected(validatorFor(t)), func(c *fiber.Ctx) error {
				return c.SendString(middleware.UserID(c))
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			if tc.expectedStatus == fiber.StatusOK {
				assert.Equal(t, tc.expectedUserID, string(body))
			} else {
				assert.Contains(t, string(body), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}
