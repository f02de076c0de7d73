package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	t.Run("writes status, content type and body", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusCreated, map[string]interface{}{"success": true})

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
	})

	t.Run("nil data writes no body", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteJSON(w, http.StatusNoContent, nil)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Zero(t, w.Body.Len())
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		write          func(w http.ResponseWriter) error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "bad request",
			write:          func(w http.ResponseWriter) error { return WriteBadRequest(w, "Topic is required", nil) },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeInvalidInput,
			expectedMsg:    "Topic is required",
		},
		{
			name:           "unauthorized",
			write:          func(w http.ResponseWriter) error { return WriteUnauthorized(w, "No token provided") },
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   CodeUnauthenticated,
			expectedMsg:    "No token provided",
		},
		{
			name:           "unauthorized default message",
			write:          func(w http.ResponseWriter) error { return WriteUnauthorized(w, "") },
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   CodeUnauthenticated,
			expectedMsg:    "Authentication required",
		},
		{
			name:           "forbidden",
			write:          func(w http.ResponseWriter) error { return WriteForbidden(w, "Access forbidden") },
			expectedStatus: http.StatusForbidden,
			expectedCode:   CodeForbidden,
			expectedMsg:    "Access forbidden",
		},
		{
			name:           "not found",
			write:          func(w http.ResponseWriter) error { return WriteNotFound(w, "Campaign not found") },
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodeNotFound,
			expectedMsg:    "Campaign not found",
		},
		{
			name:           "upstream failure",
			write:          func(w http.ResponseWriter) error { return WriteUpstreamFailure(w, "text generation failed") },
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeUpstreamFailure,
			expectedMsg:    "text generation failed",
		},
		{
			name:           "internal",
			write:          func(w http.ResponseWriter) error { return WriteInternalServerError(w, "") },
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternal,
			expectedMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			assert.NoError(t, tt.write(w))
			assert.Equal(t, tt.expectedStatus, w.Code)

			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}

	t.Run("details are included when present", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := WriteBadRequest(w, "Validation failed", map[string]interface{}{
			"Email": "Email must be a valid email",
		})

		assert.NoError(t, err)
		resp := decodeError(t, w)
		assert.Equal(t, "Email must be a valid email", resp.Details["Email"])
	})
}
