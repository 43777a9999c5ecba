// response/decode.go
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/deploymenttheory/go-onenote-page-client/headers"
	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"go.uber.org/zap"
)

// ErrMalformedResponse is returned when a 201 response body is not JSON or lacks one of the
// links.oneNoteClientUrl.href / links.oneNoteWebUrl.href fields.
var ErrMalformedResponse = errors.New("malformed create page response")

// link is a single entry of the "links" object returned by the pages API.
type link struct {
	Href string `json:"href"`
}

// createPageResponse is the subset of the 201 body the client relies on.
type createPageResponse struct {
	Links *struct {
		OneNoteClientURL *link `json:"oneNoteClientUrl"`
		OneNoteWebURL    *link `json:"oneNoteWebUrl"`
	} `json:"links"`
}

// Decode turns a create page HTTP exchange into a StandardResponse.
// A 201 yields *CreateSuccess or ErrMalformedResponse; any other status yields *CreateError
// whose Message is the raw body. The first X-CorrelationId value is copied into either variant.
func Decode(statusCode int, header http.Header, body []byte) (StandardResponse, error) {
	correlationID := firstHeaderValue(header, headers.CorrelationIDHeader)

	if statusCode != http.StatusCreated {
		errorCode, details := parseErrorDetails(header.Get("Content-Type"), body)
		return &CreateError{
			StatusCode:    statusCode,
			Status:        http.StatusText(statusCode),
			Message:       string(body),
			CorrelationID: correlationID,
			ErrorCode:     errorCode,
			Details:       details,
		}, nil
	}

	var parsed createPageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if parsed.Links == nil {
		return nil, fmt.Errorf("%w: missing links", ErrMalformedResponse)
	}
	if parsed.Links.OneNoteClientURL == nil || parsed.Links.OneNoteClientURL.Href == "" {
		return nil, fmt.Errorf("%w: missing links.oneNoteClientUrl.href", ErrMalformedResponse)
	}
	if parsed.Links.OneNoteWebURL == nil || parsed.Links.OneNoteWebURL.Href == "" {
		return nil, fmt.Errorf("%w: missing links.oneNoteWebUrl.href", ErrMalformedResponse)
	}

	return &CreateSuccess{
		StatusCode:       statusCode,
		OneNoteClientURL: parsed.Links.OneNoteClientURL.Href,
		OneNoteWebURL:    parsed.Links.OneNoteWebURL.Href,
		CorrelationID:    correlationID,
	}, nil
}

// HandleCreatePageResponse reads the response body, logs the raw response details and decodes it.
// The caller remains responsible for closing resp.Body.
func HandleCreatePageResponse(resp *http.Response, log logger.Logger) (StandardResponse, error) {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, err
	}

	log.Debug("Raw HTTP Response", zap.Int("status_code", resp.StatusCode), zap.String("Body", string(bodyBytes)))

	result, err := Decode(resp.StatusCode, resp.Header, bodyBytes)
	if err != nil {
		log.Error("Failed to decode create page response", zap.Int("status_code", resp.StatusCode), zap.Error(err))
		return nil, err
	}

	switch r := result.(type) {
	case *CreateSuccess:
		log.Info("Page created",
			zap.String("correlation_id", r.CorrelationID),
			zap.String("client_url", r.OneNoteClientURL),
			zap.String("web_url", r.OneNoteWebURL),
		)
	case *CreateError:
		method, url := "", ""
		if resp.Request != nil {
			method, url = resp.Request.Method, resp.Request.URL.String()
		}
		log.LogError("create_page_error", method, url, r.StatusCode, r.Status, fmt.Errorf("create page failed: %s", r.ErrorCode), r.Message)
	}

	return result, nil
}

// firstHeaderValue returns the first value of key, or "" when the header is absent.
func firstHeaderValue(header http.Header, key string) string {
	if values := header.Values(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
