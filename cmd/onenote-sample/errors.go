package main

import "fmt"

// AuthRequiredError is returned when no access token was supplied.
type AuthRequiredError struct{}

func (e *AuthRequiredError) Error() string {
	return "not authenticated: set " + envAccessToken + " (and optionally " + envRefreshToken + ")"
}

// PageCreationFailedError is returned when the service rejected the create page request.
type PageCreationFailedError struct {
	StatusCode    int
	CorrelationID string
}

func (e *PageCreationFailedError) Error() string {
	if e.CorrelationID == "" {
		return fmt.Sprintf("page creation failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("page creation failed with status %d (correlation id %s)", e.StatusCode, e.CorrelationID)
}
