// authenticationhandler/authenticationhandler.go

/* Package authenticationhandler owns the in-memory OAuth session of the OneNote client.
It decides when the access token must be renewed, performs the refresh_token grant and
applies session changes reported by the sign-in collaborator. Nothing is persisted. */
package authenticationhandler

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"golang.org/x/oauth2"
)

var (
	// ErrRefreshTransport wraps network-level failures of the refresh call.
	ErrRefreshTransport = errors.New("token refresh transport failure")
	// ErrMalformedTokenResponse is returned when a 200 refresh response cannot be decoded or lacks access_token.
	ErrMalformedTokenResponse = errors.New("malformed token refresh response")
	// ErrNoSession is returned by Token when no access token has been applied.
	ErrNoSession = errors.New("no authenticated session")
	// ErrNotConnected is returned when a send is attempted while the session is not connected.
	ErrNotConnected = errors.New("session is not connected")
)

// Session is the current OAuth session. It lives only in process memory.
type Session struct {
	AccessToken           string
	AccessTokenExpiration time.Time
	RefreshToken          string
}

// SessionStatus is the sign-in state reported by the identity provider collaborator.
type SessionStatus int

const (
	SessionStatusUnknown SessionStatus = iota
	SessionStatusConnected
	SessionStatusNotConnected
)

// String returns a readable name for the status.
func (s SessionStatus) String() string {
	switch s {
	case SessionStatusConnected:
		return "connected"
	case SessionStatusNotConnected:
		return "not_connected"
	default:
		return "unknown"
	}
}

// SessionInfo carries the tokens supplied with a connected session change.
type SessionInfo struct {
	AccessToken  string
	Expires      time.Time
	RefreshToken string
}

// Notifier receives the UI-facing side effects of session changes and refreshes.
type Notifier interface {
	SetCreateActionsEnabled(enabled bool)
	SetStatusText(text string)
}

type nopNotifier struct{}

func (nopNotifier) SetCreateActionsEnabled(bool) {}
func (nopNotifier) SetStatusText(string)         {}

// TokenManagerConfig holds the provider settings used for the refresh_token grant.
type TokenManagerConfig struct {
	ClientID    string
	RedirectURI string
	// Endpoint.TokenURL is the refresh endpoint; the other fields are unused.
	Endpoint oauth2.Endpoint
	// RefreshBufferPeriod renews the token this long before it expires. Zero refreshes exactly when now >= expiration.
	RefreshBufferPeriod time.Duration
	HideSensitiveData   bool
}

// TokenManager holds the session and renews its access token when needed.
type TokenManager struct {
	config     TokenManagerConfig
	httpClient *http.Client
	Logger     logger.Logger
	notifier   Notifier
	now        func() time.Time

	sessionLock sync.Mutex // sessionLock guards session, status and notifier.
	session     Session
	status      SessionStatus
}

// Option configures a TokenManager.
type Option func(*TokenManager)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// WithNotifier sets the collaborator notified of session changes.
func WithNotifier(n Notifier) Option {
	return func(tm *TokenManager) {
		if n != nil {
			tm.notifier = n
		}
	}
}

// WithSession seeds the manager with an existing, connected session.
func WithSession(s Session) Option {
	return func(tm *TokenManager) {
		tm.session = s
		tm.status = SessionStatusConnected
	}
}

// NewTokenManager creates a TokenManager with an empty session in SessionStatusUnknown unless
// WithSession is given.
func NewTokenManager(config TokenManagerConfig, httpClient *http.Client, log logger.Logger, opts ...Option) *TokenManager {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	tm := &TokenManager{
		config:     config,
		httpClient: httpClient,
		Logger:     log,
		notifier:   nopNotifier{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// SetNotifier replaces the notifier. A nil notifier disables notifications.
func (tm *TokenManager) SetNotifier(n Notifier) {
	tm.sessionLock.Lock()
	defer tm.sessionLock.Unlock()
	if n == nil {
		n = nopNotifier{}
	}
	tm.notifier = n
}

func (tm *TokenManager) getNotifier() Notifier {
	tm.sessionLock.Lock()
	defer tm.sessionLock.Unlock()
	return tm.notifier
}
