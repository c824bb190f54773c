// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"context"
	stderrors "errors"

	"github.com/danielgtaylor/huma/v2"

	"newsdesk-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsConflict(err) {
		return huma.Error409Conflict(err.Error())
	}

	if apiErr, ok := errors.AsExternalAPI(err); ok {
		switch {
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service")
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("External service error", err)
		default:
			return huma.Error502BadGateway("External service request error", err)
		}
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return huma.Error504GatewayTimeout("Request timed out", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
