package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/blog-api/services"
	"github.com/upb/blog-api/utils"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedError   string
		expectedMessage string
	}{
		{
			name:            "not found error",
			err:             services.ErrArticleNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedError:   "not_found",
			expectedMessage: "article not found",
		},
		{
			name:            "validation error",
			err:             services.ErrInvalidInput,
			expectedStatus:  http.StatusBadRequest,
			expectedError:   "bad_request",
			expectedMessage: "invalid input",
		},
		{
			name:            "unauthorized error",
			err:             services.ErrInvalidCredentials,
			expectedStatus:  http.StatusUnauthorized,
			expectedError:   "unauthorized",
			expectedMessage: "invalid username or password",
		},
		{
			name:            "forbidden error",
			err:             services.ErrForbidden,
			expectedStatus:  http.StatusForbidden,
			expectedError:   "forbidden",
			expectedMessage: "access forbidden",
		},
		{
			name:            "conflict error",
			err:             services.ErrCategoryInUse,
			expectedStatus:  http.StatusConflict,
			expectedError:   "conflict",
			expectedMessage: "category still has articles",
		},
		{
			name:            "internal error hides the cause",
			err:             services.WrapInternal("failed to list", errors.New("pq: password authentication failed")),
			expectedStatus:  http.StatusInternalServerError,
			expectedError:   "internal_error",
			expectedMessage: "An internal error occurred",
		},
		{
			name:            "unknown error",
			err:             errors.New("some unknown error"),
			expectedStatus:  http.StatusInternalServerError,
			expectedError:   "internal_error",
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleServiceError(w, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response utils.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedError, response.Error)
			assert.Equal(t, tt.expectedMessage, response.Message)
		})
	}
}

func TestHandleServiceErrorWithDetails(t *testing.T) {
	err := fmt.Errorf("create article: %w",
		services.NewDomainError(services.ErrorTypeValidation, "category does not exist", nil).
			WithDetail("category_id", "abc"))

	w := httptest.NewRecorder()
	HandleServiceError(w, err, zap.NewNop())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response utils.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "category does not exist", response.Message)
	assert.Equal(t, "abc", response.Details["category_id"])
}

func TestHandleServiceErrorNil(t *testing.T) {
	w := httptest.NewRecorder()

	HandleServiceError(w, nil, zap.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleValidationError(t *testing.T) {
	t.Run("field errors become details", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleValidationError(w, &utils.ValidationError{
			Message: "Validation failed",
			Fields:  map[string]string{"name": "name is required"},
		}, zap.NewNop())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "Validation failed", response.Message)
		assert.Equal(t, "name is required", response.Details["name"])
	})

	t.Run("plain error uses its text", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleValidationError(w, errors.New("request body is empty"), zap.NewNop())

		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "request body is empty", response.Message)
		assert.Nil(t, response.Details)
	})
}
