package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// mockAuthService is a mock implementation of AuthService for testing.
type mockAuthService struct {
	claims      *Claims
	token       string
	validateErr error
}

func (m *mockAuthService) ValidateRequest(r *http.Request) (*Claims, string, error) {
	if m.validateErr != nil {
		return nil, "", m.validateErr
	}
	return m.claims, m.token, nil
}

func TestMiddleware_RequireAuth_Success(t *testing.T) {
	claims := &Claims{Email: "resident@example.com"}
	middleware := NewMiddleware(&mockAuthService{claims: claims, token: "test-token"}, zap.NewNop())

	var handlerCalled bool
	var ctxClaims *Claims
	var ctxToken string

	handler := middleware.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		ctxClaims, _ = GetClaims(r.Context())
		ctxToken, _ = GetToken(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))

	if !handlerCalled {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if ctxClaims == nil || ctxClaims.Email != "resident@example.com" {
		t.Errorf("expected claims in context, got %v", ctxClaims)
	}
	if ctxToken != "test-token" {
		t.Errorf("expected token in context, got %q", ctxToken)
	}
}

func TestMiddleware_RequireAuth_Rejected(t *testing.T) {
	middleware := NewMiddleware(&mockAuthService{validateErr: errors.New("bad token")}, zap.NewNop())

	var handlerCalled bool
	handler := middleware.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/search", nil))

	if handlerCalled {
		t.Error("handler must not run for unauthenticated requests")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error body, got %q", ct)
	}
}

func TestMiddleware_OptionalAuth_Anonymous(t *testing.T) {
	middleware := NewMiddleware(&mockAuthService{validateErr: ErrMissingAuthorization}, zap.NewNop())

	var ctxClaims *Claims
	var hadClaims bool
	handler := middleware.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		ctxClaims, hadClaims = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/buildings/ala-moana-towers", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("anonymous request must pass through, got %d", rec.Code)
	}
	if hadClaims || ctxClaims != nil {
		t.Error("anonymous request must carry no claims")
	}
}

func TestMiddleware_OptionalAuth_Authenticated(t *testing.T) {
	claims := &Claims{Email: "resident@example.com"}
	middleware := NewMiddleware(&mockAuthService{claims: claims, token: "tok"}, zap.NewNop())

	var ctxClaims *Claims
	handler := middleware.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		ctxClaims, _ = GetClaims(r.Context())
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/buildings/ala-moana-towers", nil))

	if ctxClaims == nil || ctxClaims.Email != "resident@example.com" {
		t.Errorf("expected claims attached, got %v", ctxClaims)
	}
}
