package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/upb/campaign-studio/models"
	"go.uber.org/zap"
)

// MockIdentityResolver is a mock implementation of IdentityResolver
type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) Resolve(ctx context.Context, idToken string) (*models.User, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRequireAuth(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid bearer token allows request and injects identity", func(t *testing.T) {
		mockResolver := new(MockIdentityResolver)
		middleware := NewAuthMiddleware(mockResolver, logger)

		user := &models.User{
			UID:         "firebase-uid-123",
			Email:       "user@example.com",
			DisplayName: "Example User",
		}

		mockResolver.On("Resolve", mock.Anything, "valid-token").Return(user, nil)

		handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentityFromContext(r.Context())
			assert.NotNil(t, identity)
			assert.Equal(t, user.UID, identity.UID)
			assert.Equal(t, user.Email, identity.Email)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockResolver.AssertExpectations(t)
	})

	t.Run("missing header returns 401 without calling resolver", func(t *testing.T) {
		mockResolver := new(MockIdentityResolver)
		middleware := NewAuthMiddleware(mockResolver, logger)

		handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockResolver.AssertNotCalled(t, "Resolve")

		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "unauthenticated", body["error"])
		assert.Equal(t, "No token provided", body["message"])
	})

	t.Run("non-bearer scheme returns 401 without calling resolver", func(t *testing.T) {
		mockResolver := new(MockIdentityResolver)
		middleware := NewAuthMiddleware(mockResolver, logger)

		handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockResolver.AssertNotCalled(t, "Resolve")
	})

	t.Run("invalid token returns 401 and handler never runs", func(t *testing.T) {
		mockResolver := new(MockIdentityResolver)
		middleware := NewAuthMiddleware(mockResolver, logger)

		mockResolver.On("Resolve", mock.Anything, "invalid-token").
			Return(nil, errors.New("token verification failed"))

		handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockResolver.AssertExpectations(t)

		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid or expired token", body["message"])
	})

	t.Run("token is everything after the bearer prefix", func(t *testing.T) {
		mockResolver := new(MockIdentityResolver)
		middleware := NewAuthMiddleware(mockResolver, logger)

		user := &models.User{UID: "uid-1", Email: "a@b.c"}
		mockResolver.On("Resolve", mock.Anything, "tok.with.dots").Return(user, nil)

		handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer tok.with.dots")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockResolver.AssertExpectations(t)
	})
}

func TestIdentityContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		user := &models.User{UID: "uid-9", Email: "ctx@example.com"}
		ctx := WithIdentity(context.Background(), user)
		assert.Equal(t, user, GetIdentityFromContext(ctx))
	})

	t.Run("empty context returns nil", func(t *testing.T) {
		assert.Nil(t, GetIdentityFromContext(context.Background()))
	})
}
