// headers/headers.go
package headers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-onenote-page-client/headers/redact"
	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"github.com/deploymenttheory/go-onenote-page-client/version"
	"go.uber.org/zap"
)

const (
	// AcceptJSON is the only response type the pages API supports.
	AcceptJSON = "application/json"

	// CorrelationIDHeader carries the service-side diagnostic identifier of a request.
	CorrelationIDHeader = "X-CorrelationId"
)

// HeaderHandler sets and logs the headers of a single outgoing request.
type HeaderHandler struct {
	req               *http.Request
	log               logger.Logger
	hideSensitiveData bool
}

// NewHeaderHandler creates a new instance of HeaderHandler for the given request.
func NewHeaderHandler(req *http.Request, log logger.Logger, hideSensitiveData bool) *HeaderHandler {
	return &HeaderHandler{
		req:               req,
		log:               log,
		hideSensitiveData: hideSensitiveData,
	}
}

// SetAuthorization sets the Authorization header, adding the Bearer scheme if missing.
func (h *HeaderHandler) SetAuthorization(token string) {
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	h.req.Header.Set("Authorization", token)
}

// SetContentType sets the Content-Type header for the request.
func (h *HeaderHandler) SetContentType(contentType string) {
	h.req.Header.Set("Content-Type", contentType)
}

// SetAccept sets the Accept header for the request.
func (h *HeaderHandler) SetAccept(acceptHeader string) {
	h.req.Header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header from the application name and version.
func (h *HeaderHandler) SetUserAgent() {
	h.req.Header.Set("User-Agent", UserAgent())
}

// SetRequestHeaders applies the headers every create page request carries.
func (h *HeaderHandler) SetRequestHeaders(accessToken, contentType string) {
	h.SetAuthorization(accessToken)
	h.SetAccept(AcceptJSON)
	h.SetContentType(contentType)
	h.SetUserAgent()
}

// RedactedHeaders returns a copy of the request headers with sensitive values masked.
func (h *HeaderHandler) RedactedHeaders() map[string][]string {
	redacted := make(map[string][]string, len(h.req.Header))
	for name, values := range h.req.Header {
		masked := make([]string, len(values))
		for i, value := range values {
			masked[i] = redact.RedactSensitiveHeaderData(h.hideSensitiveData, name, value)
		}
		redacted[name] = masked
	}
	return redacted
}

// LogHeaders prints all the current headers using the logger, redacting sensitive values.
func (h *HeaderHandler) LogHeaders() {
	if h.log.GetLogLevel() <= logger.LogLevelDebug {
		h.log.Debug("HTTP Request Headers", zap.String("Headers", HeadersToString(h.RedactedHeaders())))
	}
}

// UserAgent returns the User-Agent string sent with every request.
func UserAgent() string {
	return version.GetUserAgentHeader()
}

// HeadersToString converts headers to a string for logging, one header per line in name order.
func HeadersToString(headers map[string][]string) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	headerStrings := make([]string, 0, len(names))
	for _, name := range names {
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, strings.Join(headers[name], ", ")))
	}
	return strings.Join(headerStrings, "\n")
}
