package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("signs up and returns the new account", func(t *testing.T) {
		var gotPath, gotKey string
		var gotReq signUpRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			_ = json.NewEncoder(w).Encode(signUpResponse{
				LocalID:     "new-uid",
				Email:       "new@example.com",
				DisplayName: "New User",
			})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{APIKey: "web-api-key", BaseURL: server.URL})

		user, err := client.CreateUser(ctx, "new@example.com", "secret123", "New User")

		assert.NoError(t, err)
		assert.Equal(t, "new-uid", user.UID)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, "New User", user.DisplayName)
		assert.Equal(t, "/accounts:signUp", gotPath)
		assert.Equal(t, "web-api-key", gotKey)
		assert.Equal(t, "secret123", gotReq.Password)
		assert.False(t, gotReq.ReturnSecureToken)
	})

	t.Run("missing display name in response falls back to request value", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(signUpResponse{
				LocalID: "new-uid",
				Email:   "new@example.com",
			})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL})

		user, err := client.CreateUser(ctx, "new@example.com", "secret123", "New User")

		assert.NoError(t, err)
		assert.Equal(t, "New User", user.DisplayName)
	})

	t.Run("duplicate email surfaces the api message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_EXISTS"}}`))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL})

		user, err := client.CreateUser(ctx, "dup@example.com", "secret123", "Dup")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrIdentityToolkit)
		assert.Contains(t, err.Error(), "EMAIL_EXISTS")
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the account for a uid", func(t *testing.T) {
		var gotReq lookupRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/accounts:lookup", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			_, _ = w.Write([]byte(`{"users":[{"localId":"uid-1","email":"user@example.com","displayName":"User"}]}`))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL})

		user, err := client.GetUser(ctx, "uid-1")

		assert.NoError(t, err)
		assert.Equal(t, "uid-1", user.UID)
		assert.Equal(t, "User", user.DisplayName)
		assert.Equal(t, []string{"uid-1"}, gotReq.LocalID)
	})

	t.Run("empty users reports ErrUserNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"users":[]}`))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL})

		user, err := client.GetUser(ctx, "gone-uid")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("non-200 without message reports status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{APIKey: "k", BaseURL: server.URL})

		_, err := client.GetUser(ctx, "uid-1")

		assert.ErrorIs(t, err, ErrIdentityToolkit)
		assert.Contains(t, err.Error(), "unexpected status 502")
	})
}
