package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"

	"newsdesk-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "nil error returns nil",
			input:          nil,
			expectedStatus: 0,
		},
		{
			name:           "NotFoundError returns 404",
			input:          &errors.NotFoundError{Resource: "feed", ID: "x"},
			expectedStatus: 404,
			expectedInMsg:  "feed not found: x",
		},
		{
			name:           "ValidationError returns 400",
			input:          &errors.ValidationError{Field: "url", Message: "invalid format"},
			expectedStatus: 400,
			expectedInMsg:  "invalid format",
		},
		{
			name:           "ConflictError returns 409",
			input:          &errors.ConflictError{Resource: "feed", Key: "https://a.example.com/rss"},
			expectedStatus: 409,
			expectedInMsg:  "feed already exists",
		},
		{
			name:           "ExternalAPIError with 500 returns 503",
			input:          &errors.ExternalAPIError{StatusCode: 500, Message: "server error"},
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "ExternalAPIError with 429 returns 429",
			input:          &errors.ExternalAPIError{StatusCode: 429, Message: "rate limited"},
			expectedStatus: 429,
			expectedInMsg:  "Rate limited by external service",
		},
		{
			name:           "ExternalAPIError with 404 returns 502",
			input:          &errors.ExternalAPIError{StatusCode: 404, Message: "not found"},
			expectedStatus: 502,
			expectedInMsg:  "External service request error",
		},
		{
			name:           "wrapped NotFoundError returns 404",
			input:          fmt.Errorf("wrapped: %w", &errors.NotFoundError{Resource: "news item", ID: "abc"}),
			expectedStatus: 404,
			expectedInMsg:  "news item not found",
		},
		{
			name:           "wrapped ExternalAPIError is unwrapped",
			input:          errors.WrapError(&errors.ExternalAPIError{StatusCode: 502}, "summarize"),
			expectedStatus: 503,
			expectedInMsg:  "External service error",
		},
		{
			name:           "deadline returns 504",
			input:          fmt.Errorf("refresh: %w", context.DeadlineExceeded),
			expectedStatus: 504,
			expectedInMsg:  "Request timed out",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("some unknown error"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			if tt.input == nil {
				assert.Nil(t, result)
				return
			}

			humaErr, ok := result.(*huma.ErrorModel)
			if !assert.True(t, ok, "Expected huma.ErrorModel") {
				return
			}
			assert.Equal(t, tt.expectedStatus, humaErr.Status)
			assert.Contains(t, humaErr.Detail, tt.expectedInMsg)
		})
	}
}
