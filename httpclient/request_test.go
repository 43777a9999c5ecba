// httpclient/request_test.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deploymenttheory/go-onenote-page-client/apiintegrations/onenote"
	"github.com/deploymenttheory/go-onenote-page-client/authenticationhandler"
	"github.com/deploymenttheory/go-onenote-page-client/concurrency"
	"github.com/deploymenttheory/go-onenote-page-client/headers"
	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"github.com/deploymenttheory/go-onenote-page-client/response"
	"github.com/deploymenttheory/go-onenote-page-client/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/oauth2"
)

const (
	testSectionID = "0f9b4a2c-1234-4abc-9def-0123456789ab"
	testPageID    = "a1b2c3d4-0000-1111-2222-333344445555"
)

var testClientURL = "onenote:https://d.docs.live.net/123/Notebook.one#Title&section-id=" + testSectionID + "&page-id=" + testPageID + "&end"

type recordingNotifier struct {
	mu       sync.Mutex
	enabled  []bool
	statuses []string
	visible  []bool
	launched []string
}

func (r *recordingNotifier) SetCreateActionsEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = append(r.enabled, enabled)
}

func (r *recordingNotifier) SetStatusText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, text)
}

func (r *recordingNotifier) SetOpenPageVisible(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = append(r.visible, visible)
}

func (r *recordingNotifier) LaunchURI(uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.launched = append(r.launched, uri)
	return nil
}

func (r *recordingNotifier) lastStatus() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

func createdBody(clientURL string) string {
	body, _ := json.Marshal(map[string]any{
		"id": "0-123",
		"links": map[string]any{
			"oneNoteClientUrl": map[string]string{"href": clientURL},
			"oneNoteWebUrl":    map[string]string{"href": "https://onedrive.live.com/page"},
		},
	})
	return string(body)
}

func newPagesServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func testConfig(pagesEndpoint, tokenEndpoint string) ClientConfig {
	return ClientConfig{
		ClientID:      "000000004C12345A",
		PagesEndpoint: pagesEndpoint,
		TokenEndpoint: tokenEndpoint,
	}
}

// newConnectedClient builds a client whose session holds "valid-token" for another hour.
func newConnectedClient(t *testing.T, pagesURL string, notifier Notifier) *Client {
	t.Helper()
	client, err := BuildClient(testConfig(pagesURL, "https://login.example.com/token"), nil, notifier,
		WithLogger(logger.NewNopLogger()),
		WithClock(func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)

	client.TokenManager.ApplySession(authenticationhandler.SessionStatusConnected, authenticationhandler.SessionInfo{
		AccessToken:  "valid-token",
		Expires:      time.Now().Add(time.Hour),
		RefreshToken: "refresh-token",
	})
	return client
}

func TestSendCreatePageRequest_Created(t *testing.T) {
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer valid-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, onenote.ContentTypeHTML, r.Header.Get("Content-Type"))
		assert.Equal(t, headers.UserAgent(), r.Header.Get("User-Agent"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "<title>A page created from basic HTML-formatted text (Go Sample)</title>")

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-CorrelationId", "abc-123")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(createdBody(testClientURL)))
	})

	notifier := &recordingNotifier{}
	client := newConnectedClient(t, server.URL, notifier)

	result, err := client.CreateSimplePage(context.Background())
	require.NoError(t, err)

	success, ok := result.(*response.CreateSuccess)
	require.True(t, ok)
	assert.Equal(t, 201, success.StatusCode)
	assert.Equal(t, testClientURL, success.OneNoteClientURL)
	assert.Equal(t, "https://onedrive.live.com/page", success.OneNoteWebURL)
	assert.Equal(t, "abc-123", success.CorrelationID)
	assert.Same(t, success, client.LastResponse())

	assert.Equal(t, []string{status.AuthenticationSuccessful, status.SendingRequest, status.PageCreated}, notifier.statuses)
	assert.Equal(t, []bool{false, true}, notifier.visible)
	assert.Equal(t, []bool{true, false, true}, notifier.enabled)
}

func TestSendCreatePageRequest_Forbidden(t *testing.T) {
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CorrelationId", "xyz")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("Forbidden"))
	})

	notifier := &recordingNotifier{}
	client := newConnectedClient(t, server.URL, notifier)

	result, err := client.CreatePageWithURLSnapshot(context.Background())
	require.NoError(t, err)

	failure, ok := result.(*response.CreateError)
	require.True(t, ok)
	assert.Equal(t, 403, failure.StatusCode)
	assert.Equal(t, "Forbidden", failure.Message)
	assert.Equal(t, "xyz", failure.CorrelationID)
	assert.Same(t, failure, client.LastResponse())

	assert.Equal(t, "Page creation failed with error code: 403", notifier.lastStatus())
	assert.Equal(t, []bool{false, false}, notifier.visible)
}

func TestSendCreatePageRequest_MultipartImage(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff, 0xe0, 0x01}

	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		assert.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		reader := multipart.NewReader(r.Body, params["boundary"])
		var names []string
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			if !assert.NoError(t, err) {
				break
			}
			data, _ := io.ReadAll(part)
			names = append(names, part.FormName())
			if part.FormName() == onenote.ImagePartName {
				assert.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))
				assert.Equal(t, image, data)
			}
		}
		assert.Equal(t, []string{onenote.PresentationPartName, onenote.ImagePartName}, names)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(createdBody(testClientURL)))
	})

	client := newConnectedClient(t, server.URL, nil)

	result, err := client.CreatePageWithImage(context.Background(), bytes.NewReader(image))
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
}

func TestSendCreatePageRequest_RefreshesExpiredToken(t *testing.T) {
	var tokenCalls int32
	tokenServer := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "stale-refresh", r.PostForm.Get("refresh_token"))
		_, _ = w.Write([]byte(`{"access_token":"fresh-token","expires_in":3600,"refresh_token":"fresh-refresh"}`))
	})

	pagesServer := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(createdBody(testClientURL)))
	})

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Minute)
	tm := authenticationhandler.NewTokenManager(authenticationhandler.TokenManagerConfig{
		ClientID:    "000000004C12345A",
		RedirectURI: "https://login.live.com/oauth20_desktop.srf",
		Endpoint:    oauth2.Endpoint{TokenURL: tokenServer.URL},
	}, nil, logger.NewNopLogger(),
		authenticationhandler.WithClock(func() time.Time { return now }),
		authenticationhandler.WithSession(authenticationhandler.Session{
			AccessToken:           "stale-token",
			AccessTokenExpiration: expired,
			RefreshToken:          "stale-refresh",
		}),
	)

	notifier := &recordingNotifier{}
	client, err := BuildClient(testConfig(pagesServer.URL, tokenServer.URL), tm, notifier, WithLogger(logger.NewNopLogger()))
	require.NoError(t, err)

	result, err := client.CreateSimplePage(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Succeeded())

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
	assert.Equal(t, expired.Add(time.Hour), tm.Session().AccessTokenExpiration)
	assert.Equal(t, []string{status.TokenNeedsRefresh, status.SendingRequest, status.PageCreated}, notifier.statuses)
}

func TestSendCreatePageRequest_RefreshRejectedSendsStaleToken(t *testing.T) {
	tokenServer := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	pagesServer := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("token expired"))
	})

	client, err := BuildClient(testConfig(pagesServer.URL, tokenServer.URL), nil, nil, WithLogger(logger.NewNopLogger()))
	require.NoError(t, err)
	client.TokenManager.ApplySession(authenticationhandler.SessionStatusConnected, authenticationhandler.SessionInfo{
		AccessToken:  "stale-token",
		Expires:      time.Now().Add(-time.Minute),
		RefreshToken: "stale-refresh",
	})
	before := client.TokenManager.Session()

	result, err := client.CreateSimplePage(context.Background())
	require.NoError(t, err)

	failure, ok := result.(*response.CreateError)
	require.True(t, ok)
	assert.Equal(t, 401, failure.StatusCode)
	assert.Equal(t, "token expired", failure.Message)
	assert.Equal(t, before, client.TokenManager.Session())
}

func TestSendCreatePageRequest_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	pagesURL := server.URL
	server.Close()

	notifier := &recordingNotifier{}
	client := newConnectedClient(t, pagesURL, notifier)

	result, err := client.CreateSimplePage(context.Background())

	assert.Nil(t, result)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, OpCreatePage, transportErr.Op)
	assert.Nil(t, client.LastResponse())
	assert.Equal(t, status.PageCreationFailed, notifier.lastStatus())
}

func TestSendCreatePageRequest_RefreshTransportFailure(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	tokenURL := tokenServer.URL
	tokenServer.Close()

	var pageCalls int32
	pagesServer := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pageCalls, 1)
	})

	client, err := BuildClient(testConfig(pagesServer.URL, tokenURL), nil, nil, WithLogger(logger.NewNopLogger()))
	require.NoError(t, err)
	client.TokenManager.ApplySession(authenticationhandler.SessionStatusConnected, authenticationhandler.SessionInfo{
		AccessToken: "stale-token",
		Expires:     time.Now().Add(-time.Minute),
	})

	_, err = client.CreateSimplePage(context.Background())

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, OpRefresh, transportErr.Op)
	assert.ErrorIs(t, err, authenticationhandler.ErrRefreshTransport)
	assert.Equal(t, int32(0), atomic.LoadInt32(&pageCalls))
}

func TestSendCreatePageRequest_MalformedCreated(t *testing.T) {
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"links":{}}`))
	})

	notifier := &recordingNotifier{}
	client := newConnectedClient(t, server.URL, notifier)

	result, err := client.CreateSimplePage(context.Background())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, response.ErrMalformedResponse)
	assert.Nil(t, client.LastResponse())
	assert.Equal(t, status.PageCreationFailed, notifier.lastStatus())
}

func TestSendCreatePageRequest_InvalidRequest(t *testing.T) {
	var calls int32
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	client := newConnectedClient(t, server.URL, nil)

	_, err := client.SendCreatePageRequest(context.Background(), &onenote.PageRequest{
		Presentation: `<html><body><img src="name:missing" /></body></html>`,
	})

	assert.ErrorIs(t, err, onenote.ErrUnmatchedPartReference)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.False(t, client.Gate.Pending())
}

func TestSendCreatePageRequest_RejectsWhilePending(t *testing.T) {
	release := make(chan struct{})
	arrived := make(chan struct{})
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(createdBody(testClientURL)))
	})

	client := newConnectedClient(t, server.URL, nil)

	done := make(chan error, 1)
	go func() {
		_, err := client.CreateSimplePage(context.Background())
		done <- err
	}()

	<-arrived
	_, err := client.CreateSimplePage(context.Background())
	assert.ErrorIs(t, err, concurrency.ErrRequestPending)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, client.Gate.Pending())
}

func TestOpenCreatedPage(t *testing.T) {
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(createdBody(testClientURL)))
	})

	notifier := &recordingNotifier{}
	client := newConnectedClient(t, server.URL, notifier)

	assert.ErrorIs(t, client.OpenCreatedPage(), ErrNoCreatedPage)

	_, err := client.CreateSimplePage(context.Background())
	require.NoError(t, err)
	require.NoError(t, client.OpenCreatedPage())

	require.Len(t, notifier.launched, 1)
	assert.Equal(t,
		"onenote:https://d.docs.live.net/123/Notebook.one#Title&section-id={"+testSectionID+"}&page-id={"+testPageID+"}&end",
		notifier.launched[0],
	)
}

func TestOpenCreatedPage_AfterFailure(t *testing.T) {
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	notifier := &recordingNotifier{}
	client := newConnectedClient(t, server.URL, notifier)

	_, err := client.CreateSimplePage(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, client.OpenCreatedPage(), ErrNoCreatedPage)
	assert.Empty(t, notifier.launched)
}

func TestSendCreatePageRequest_RedirectNotFollowed(t *testing.T) {
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			t.Error("redirected create page request was replayed")
			return
		}
		http.Redirect(w, r, "/moved", http.StatusTemporaryRedirect)
	})

	client := newConnectedClient(t, server.URL+"/pages", nil)

	result, err := client.CreateSimplePage(context.Background())
	require.NoError(t, err)

	failure, ok := result.(*response.CreateError)
	require.True(t, ok)
	assert.Equal(t, http.StatusTemporaryRedirect, failure.StatusCode)
}

func (r *recordingNotifier) lastEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled[len(r.enabled)-1]
}

func TestSendCreatePageRequest_RefusedWhileNotConnected(t *testing.T) {
	var calls int32
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	notifier := &recordingNotifier{}
	client := newConnectedClient(t, server.URL, notifier)
	client.TokenManager.ApplySession(authenticationhandler.SessionStatusNotConnected, authenticationhandler.SessionInfo{})

	result, err := client.CreateSimplePage(context.Background())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, authenticationhandler.ErrNotConnected)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, []bool{true, false}, notifier.enabled)
	assert.False(t, notifier.lastEnabled())
	assert.Equal(t, status.AuthenticationFailed, notifier.lastStatus())
	assert.False(t, client.Gate.Pending())
}

func TestSendCreatePageRequest_SessionLostDuringSendKeepsActionsDisabled(t *testing.T) {
	var client *Client
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		client.TokenManager.ApplySession(authenticationhandler.SessionStatusNotConnected, authenticationhandler.SessionInfo{})
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(createdBody(testClientURL)))
	})

	notifier := &recordingNotifier{}
	client = newConnectedClient(t, server.URL, notifier)

	_, err := client.CreateSimplePage(context.Background())
	require.NoError(t, err)

	assert.False(t, notifier.lastEnabled())
}

func TestSendCreatePageRequest_LogsGateRequestID(t *testing.T) {
	server := newPagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(createdBody(testClientURL)))
	})

	core, logs := observer.New(zapcore.DebugLevel)
	client, err := BuildClient(testConfig(server.URL, "https://login.example.com/token"), nil, nil,
		WithLogger(logger.NewLogger(zap.New(core), logger.LogLevelDebug)),
	)
	require.NoError(t, err)
	client.TokenManager.ApplySession(authenticationhandler.SessionStatusConnected, authenticationhandler.SessionInfo{
		AccessToken: "valid-token",
		Expires:     time.Now().Add(time.Hour),
	})

	_, err = client.CreateSimplePage(context.Background())
	require.NoError(t, err)

	acquired := logs.FilterMessage("Acquired request gate").All()
	require.Len(t, acquired, 1)
	gateID := acquired[0].ContextMap()["RequestID"]
	require.NotEmpty(t, gateID)

	started := logs.FilterMessage("HTTP request started").All()
	require.Len(t, started, 1)
	assert.Equal(t, gateID, started[0].ContextMap()["request_id"])
}
