// authenticationhandler/session.go
package authenticationhandler

import (
	"github.com/deploymenttheory/go-onenote-page-client/status"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ApplySession applies a sign-in state change. A connected status replaces the session with info
// and enables page creation; any other status disables it and leaves the tokens untouched.
func (tm *TokenManager) ApplySession(sessionStatus SessionStatus, info SessionInfo) {
	n := tm.getNotifier()

	tm.sessionLock.Lock()
	tm.status = sessionStatus
	if sessionStatus == SessionStatusConnected {
		tm.session = Session{
			AccessToken:           info.AccessToken,
			AccessTokenExpiration: info.Expires,
			RefreshToken:          info.RefreshToken,
		}
	}
	tm.sessionLock.Unlock()

	switch sessionStatus {
	case SessionStatusConnected:

		tm.Logger.Info("Session connected", zap.Time("ExpirationTime", info.Expires))
		n.SetCreateActionsEnabled(true)
		n.SetStatusText(status.AuthenticationSuccessful)
	case SessionStatusNotConnected:
		tm.Logger.Warn("Session not connected")
		n.SetCreateActionsEnabled(false)
		n.SetStatusText(status.AuthenticationFailed)
	default:
		tm.Logger.Warn("Session state unknown", zap.Stringer("status", sessionStatus))
		n.SetCreateActionsEnabled(false)
		n.SetStatusText(status.NotAuthenticated)
	}
}

// Status returns the sign-in state last applied.
func (tm *TokenManager) Status() SessionStatus {
	tm.sessionLock.Lock()
	defer tm.sessionLock.Unlock()
	return tm.status
}

// Connected reports whether page creation is allowed for the current session.
func (tm *TokenManager) Connected() bool {
	return tm.Status() == SessionStatusConnected
}

// Session returns a copy of the current session.
func (tm *TokenManager) Session() Session {
	tm.sessionLock.Lock()
	defer tm.sessionLock.Unlock()
	return tm.session
}

// AccessToken returns the current access token without refreshing it.
func (tm *TokenManager) AccessToken() string {
	return tm.Session().AccessToken
}

// Token implements oauth2.TokenSource over the current session. It never refreshes.
func (tm *TokenManager) Token() (*oauth2.Token, error) {
	s := tm.Session()
	if s.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: s.RefreshToken,
		Expiry:       s.AccessTokenExpiration,
	}, nil
}

var _ oauth2.TokenSource = (*TokenManager)(nil)
