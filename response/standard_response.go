// response/standard_response.go
/* Response models for the create page call. Exactly one variant is produced per call:
CreateSuccess for 201 Created, CreateError for every other status. */
package response

// StandardResponse is implemented by *CreateSuccess and *CreateError.
type StandardResponse interface {
	// GetStatusCode returns the HTTP status code of the create page call.
	GetStatusCode() int
	// GetCorrelationID returns the X-CorrelationId header value, empty when the service sent none.
	GetCorrelationID() string
	// Succeeded reports whether the page was created.
	Succeeded() bool
}

// CreateSuccess is the result of a 201 Created response.
type CreateSuccess struct {
	StatusCode       int    `json:"status_code"`
	OneNoteClientURL string `json:"one_note_client_url"`
	OneNoteWebURL    string `json:"one_note_web_url"`
	CorrelationID    string `json:"correlation_id,omitempty"`
}

// CreateError is the result of any non-201 response. Message is always the raw response body;
// ErrorCode and Details are best-effort diagnostics extracted according to the Content-Type.
type CreateError struct {
	StatusCode    int      `json:"status_code"`
	Status        string   `json:"status"`
	Message       string   `json:"message"`
	CorrelationID string   `json:"correlation_id,omitempty"`
	ErrorCode     string   `json:"error_code,omitempty"`
	Details       []string `json:"details,omitempty"`
}

func (s *CreateSuccess) GetStatusCode() int       { return s.StatusCode }
func (s *CreateSuccess) GetCorrelationID() string { return s.CorrelationID }
func (s *CreateSuccess) Succeeded() bool          { return true }

func (e *CreateError) GetStatusCode() int       { return e.StatusCode }
func (e *CreateError) GetCorrelationID() string { return e.CorrelationID }
func (e *CreateError) Succeeded() bool          { return false }
