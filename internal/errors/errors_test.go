package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name           string
		err            *AppError
		expectedCat    ErrorCategory
		expectedStatus int
		expectedPrefix string
	}{
		{
			name:           "validation error",
			err:            NewValidationError("estimatedHours must be numeric"),
			expectedCat:    CategoryValidation,
			expectedStatus: http.StatusBadRequest,
			expectedPrefix: "[VALIDATION_ERROR]",
		},
		{
			name:           "field error",
			err:            NewFieldError("storyPoints", "must not be negative"),
			expectedCat:    CategoryValidation,
			expectedStatus: http.StatusBadRequest,
			expectedPrefix: "[VALIDATION_ERROR]",
		},
		{
			name:           "predictor error",
			err:            NewPredictorError("risk", fmt.Errorf("model exploded")),
			expectedCat:    CategoryPredictor,
			expectedStatus: http.StatusBadGateway,
			expectedPrefix: "[PREDICTOR_ERROR]",
		},
		{
			name:           "precondition error",
			err:            NewPreconditionError("risk classifier not loaded"),
			expectedCat:    CategoryPrecondition,
			expectedStatus: http.StatusServiceUnavailable,
			expectedPrefix: "[PRECONDITION_ERROR]",
		},
		{
			name:           "rate limit error",
			err:            NewRateLimitError("30s"),
			expectedCat:    CategoryRateLimit,
			expectedStatus: http.StatusTooManyRequests,
			expectedPrefix: "[RATE_LIMIT_EXCEEDED]",
		},
		{
			name:           "configuration error",
			err:            NewConfigurationError("PORT is required", nil),
			expectedCat:    CategoryConfiguration,
			expectedStatus: http.StatusInternalServerError,
			expectedPrefix: "[CONFIGURATION_ERROR]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.expectedCat, tt.err.Category)
			assert.Equal(t, tt.expectedStatus, tt.err.HTTPStatus)
			assert.Contains(t, tt.err.Error(), tt.expectedPrefix)
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestPredictorErrorKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewPredictorError("embedding", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "embedding predictor failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name        string
		input       error
		expectedCat ErrorCategory
	}{
		{
			name:        "passes app errors through",
			input:       NewPreconditionError("not loaded"),
			expectedCat: CategoryPrecondition,
		},
		{
			name:        "unwraps wrapped app errors",
			input:       WrapError(NewValidationError("bad"), "ranking developer %d", 2),
			expectedCat: CategoryValidation,
		},
		{
			name:        "context deadline becomes timeout",
			input:       context.DeadlineExceeded,
			expectedCat: CategoryTimeout,
		},
		{
			name:        "json syntax errors become validation",
			input:       fmt.Errorf("invalid character 'x' looking for beginning of value"),
			expectedCat: CategoryValidation,
		},
		{
			name:        "anything else is internal",
			input:       fmt.Errorf("boom"),
			expectedCat: CategoryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.input)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.expectedCat, appErr.Category)
		})
	}

	assert.Nil(t, ToAppError(nil))
}

func TestCategoryPredicates(t *testing.T) {
	wrapped := fmt.Errorf("developer dev-2: %w", NewPredictorError("assignee", nil))

	assert.True(t, IsPredictor(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.True(t, IsPrecondition(NewPreconditionError("x")))
	assert.False(t, IsPrecondition(fmt.Errorf("plain")))
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(NewValidationError("bad input"))
	})
	r.GET("/precondition", func(c *gin.Context) {
		_ = c.Error(NewPreconditionError("not loaded"))
	})
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tests := []struct {
		path           string
		expectedStatus int
	}{
		{"/validation", http.StatusBadRequest},
		{"/precondition", http.StatusServiceUnavailable},
		{"/ok", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRecoveryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RecoveryHandler())
	r.GET("/panic", func(c *gin.Context) {
		panic("predictor table corrupted")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestErrorHandlerBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-1")
		c.Next()
	})
	r.Use(ErrorHandler())
	r.GET("/field", func(c *gin.Context) {
		_ = c.Error(NewFieldError("storyPoints", "must not be negative"))
	})
	r.GET("/internal", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("db password leaked"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/field", nil)
	r.ServeHTTP(w, req)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, CategoryValidation, body.Category)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Contains(t, body.Error, "storyPoints")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/internal", nil)
	r.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Error, "password")
}

func TestValidationDetailInBody(t *testing.T) {
	body := NewValidationError("malformed request body", "body is not valid JSON").Body("")
	assert.Equal(t, "malformed request body: body is not valid JSON", body.Error)
}
