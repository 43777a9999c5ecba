// status.go
// This package provides the user-visible status texts and helpers for describing create page HTTP status codes.
package status

import (
	"fmt"
	"net/http"
)

// Status texts shown to the user at each phase of a page creation.
const (
	AuthenticationSuccessful = "Authentication successful"
	AuthenticationFailed     = "Authentication failed."
	NotAuthenticated         = "Not Authenticated"
	TokenNeedsRefresh        = "Access token needs to be refreshed"
	SendingRequest           = "Sending Request..."
	PageCreated              = "Page successfully created."
	PageCreationFailed       = "Page creation failed"
)

// PageCreationFailedWithCode returns the status text for a create page call that did not return 201 Created.
func PageCreationFailedWithCode(statusCode int) string {
	return fmt.Sprintf("%s with error code: %d", PageCreationFailed, statusCode)
}

// TranslateStatusCode provides a human-readable message for the HTTP status codes the pages and token endpoints return.
func TranslateStatusCode(statusCode int) string {
	messages := map[int]string{
		http.StatusOK:                    "Request successful.",
		http.StatusCreated:               "Page created.",
		http.StatusBadRequest:            "Bad request. Verify the page HTML and the multipart part names.",
		http.StatusUnauthorized:          "Authentication failed. The access token is missing, invalid or expired.",
		http.StatusForbidden:             "Invalid permissions. Verify the app was granted the notes create scope.",
		http.StatusNotFound:              "Resource not found. Verify the pages endpoint URL.",
		http.StatusRequestEntityTooLarge: "Payload too large. Reduce the size of the image or attachment parts.",
		http.StatusUnsupportedMediaType:  "Unsupported media type. Verify the content type of each part.",
		http.StatusTooManyRequests:       "Too many requests. The user has sent too many requests in a given amount of time.",
		http.StatusInternalServerError:   "Internal server error. The service encountered an unexpected condition.",
		http.StatusServiceUnavailable:    "Service unavailable. The service is temporarily unable to handle the request.",
	}

	if message, exists := messages[statusCode]; exists {
		return message
	}
	return fmt.Sprintf("Unknown status code: %d", statusCode)
}

// IsAuthenticationFailure reports whether statusCode indicates the access token was rejected.
func IsAuthenticationFailure(statusCode int) bool {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	default:
		return false
	}
}
