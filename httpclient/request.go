// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deploymenttheory/go-onenote-page-client/apiintegrations/onenote"
	"github.com/deploymenttheory/go-onenote-page-client/authenticationhandler"
	"github.com/deploymenttheory/go-onenote-page-client/concurrency"
	"github.com/deploymenttheory/go-onenote-page-client/headers"
	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"github.com/deploymenttheory/go-onenote-page-client/response"
	"github.com/deploymenttheory/go-onenote-page-client/status"
	"go.uber.org/zap"
)

// SendCreatePageRequest sends req to the pages endpoint and returns the decoded outcome.
//
// The sequence is: acquire the request gate (concurrency.ErrRequestPending if another send is
// outstanding), clear the previous result, renew the access token if it has expired, POST the
// page, decode the response and store it as the most recent result. Every phase is reported to
// the Notifier, and page creation actions are disabled until the send completes, then enabled
// again only if the session is still connected.
//
// A session that is not connected is refused with authenticationhandler.ErrNotConnected before
// anything is sent or notified.
//
// A non-201 response is returned as *response.CreateError with a nil error. Network failures of
// either the refresh or the create call are returned as *TransportError, a 201 without the
// expected links as response.ErrMalformedResponse, and an invalid req as the onenote
// validation errors before any network I/O.
func (c *Client) SendCreatePageRequest(ctx context.Context, req *onenote.PageRequest) (response.StandardResponse, error) {
	log := c.Logger

	ctx, requestID, err := c.Gate.TryAcquire(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Gate.Release(requestID)

	log = log.With(zap.String("request_id", requestID.String()))

	if !c.TokenManager.Connected() {
		log.Warn("Rejected create page request, session is not connected",
			zap.Stringer("session_status", c.TokenManager.Status()),
		)
		return nil, authenticationhandler.ErrNotConnected
	}

	c.notifier.SetCreateActionsEnabled(false)
	defer func() {
		c.notifier.SetCreateActionsEnabled(c.TokenManager.Connected())
	}()

	c.setLastResponse(nil)

	body, contentType, err := onenote.MarshalPageRequest(req, log)
	if err != nil {
		return nil, err
	}

	if err := c.TokenManager.EnsureFreshToken(ctx); err != nil {
		c.notifier.SetStatusText(status.PageCreationFailed)
		c.notifier.SetOpenPageVisible(false)
		if errors.Is(err, authenticationhandler.ErrRefreshTransport) {
			return nil, &TransportError{Op: OpRefresh, Endpoint: c.config.TokenEndpoint, Err: err}
		}
		return nil, err
	}

	c.notifier.SetStatusText(status.SendingRequest)
	c.notifier.SetOpenPageVisible(false)

	result, err := c.doCreatePage(ctx, body, contentType, log)
	if err != nil {
		c.notifier.SetStatusText(status.PageCreationFailed)
		c.notifier.SetOpenPageVisible(false)
		return nil, err
	}

	c.setLastResponse(result)

	if result.Succeeded() {
		c.notifier.SetStatusText(status.PageCreated)
		c.notifier.SetOpenPageVisible(true)
	} else {
		c.notifier.SetStatusText(status.PageCreationFailedWithCode(result.GetStatusCode()))
		c.notifier.SetOpenPageVisible(false)
	}

	return result, nil
}

// doCreatePage performs the POST and decodes the response.
func (c *Client) doCreatePage(ctx context.Context, body []byte, contentType string, log logger.Logger) (response.StandardResponse, error) {
	endpoint := c.config.PagesEndpoint
	requestID := concurrency.RequestIDFromContext(ctx).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		log.Error("Failed to create create page request", zap.Error(err))
		return nil, fmt.Errorf("building create page request: %w", err)
	}

	headerHandler := headers.NewHeaderHandler(req, log, c.config.HideSensitiveData)
	headerHandler.SetRequestHeaders(c.TokenManager.AccessToken(), contentType)
	headerHandler.LogHeaders()

	log.LogRequestStart("create_page", requestID, req.Method, endpoint, headerHandler.RedactedHeaders())
	startTime := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.LogError("create_page", req.Method, endpoint, 0, "", err, "")
		return nil, &TransportError{Op: OpCreatePage, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	log.LogRequestEnd("create_page", req.Method, endpoint, resp.StatusCode, time.Since(startTime))

	if status.IsAuthenticationFailure(resp.StatusCode) {
		log.Warn("Access token rejected by the pages endpoint",
			zap.Int("status_code", resp.StatusCode),
			zap.String("status_message", status.TranslateStatusCode(resp.StatusCode)),
		)
	}

	result, err := response.HandleCreatePageResponse(resp, log)
	if err != nil && !errors.Is(err, response.ErrMalformedResponse) {
		return nil, &TransportError{Op: OpCreatePage, Endpoint: endpoint, Err: err}
	}
	return result, err
}

func (c *Client) setLastResponse(result response.StandardResponse) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.lastResponse = result
}

// LastResponse returns the outcome of the most recent send, or nil when it has not completed
// or ended in an error.
func (c *Client) LastResponse() response.StandardResponse {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lastResponse
}
