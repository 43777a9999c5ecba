// httpclient/errors.go
package httpclient

import "fmt"

// Operations reported by TransportError.
const (
	OpRefresh    = "refresh"
	OpCreatePage = "create_page"
)

// TransportError reports a network-level failure of the token refresh or the create page call.
// It is never produced for an HTTP response, whatever its status.
type TransportError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request to %s failed: %v", e.Op, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
