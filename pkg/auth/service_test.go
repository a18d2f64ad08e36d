package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// mockJWKSClient is a mock implementation of JWKSClientInterface.
type mockJWKSClient struct {
	claims *Claims
	err    error

	capturedToken string
}

func (m *mockJWKSClient) ValidateToken(tokenString string) (*Claims, error) {
	m.capturedToken = tokenString
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func (m *mockJWKSClient) Close() {}

func TestValidateRequest_BearerHeader(t *testing.T) {
	jwks := &mockJWKSClient{claims: &Claims{Email: "resident@example.com"}}
	svc := NewAuthService(jwks, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	claims, token, err := svc.ValidateRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "resident@example.com" {
		t.Errorf("unexpected claims: %v", claims)
	}
	if token != "header-token" || jwks.capturedToken != "header-token" {
		t.Errorf("expected header token to be validated, got %q", jwks.capturedToken)
	}
}

func TestValidateRequest_CookieTakesPrecedence(t *testing.T) {
	jwks := &mockJWKSClient{claims: &Claims{}}
	svc := NewAuthService(jwks, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})

	if _, _, err := svc.ValidateRequest(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jwks.capturedToken != "cookie-token" {
		t.Errorf("cookie must win over header, validated %q", jwks.capturedToken)
	}
}

func TestValidateRequest_MissingAuthorization(t *testing.T) {
	svc := NewAuthService(&mockJWKSClient{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	if _, _, err := svc.ValidateRequest(req); !errors.Is(err, ErrMissingAuthorization) {
		t.Errorf("expected ErrMissingAuthorization, got %v", err)
	}
}

func TestValidateRequest_MalformedHeader(t *testing.T) {
	svc := NewAuthService(&mockJWKSClient{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if _, _, err := svc.ValidateRequest(req); !errors.Is(err, ErrInvalidAuthFormat) {
		t.Errorf("expected ErrInvalidAuthFormat, got %v", err)
	}
}

func TestValidateRequest_InvalidToken(t *testing.T) {
	jwks := &mockJWKSClient{err: errors.New("token validation failed")}
	svc := NewAuthService(jwks, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	if _, _, err := svc.ValidateRequest(req); err == nil {
		t.Error("expected validation error")
	}
}
