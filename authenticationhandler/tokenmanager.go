// authenticationhandler/tokenmanager.go
package authenticationhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deploymenttheory/go-onenote-page-client/headers/redact"
	"github.com/deploymenttheory/go-onenote-page-client/status"
	"go.uber.org/zap"
)

// OAuthResponse represents the body of a successful refresh_token grant.
type OAuthResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// EnsureFreshToken refreshes the access token when it has expired, and does nothing otherwise.
// Only transport and malformed-body failures of the refresh are returned.
func (tm *TokenManager) EnsureFreshToken(ctx context.Context) error {
	if tm.isTokenValid() {
		tm.Logger.Debug("Access token is valid, no refresh needed")
		return nil
	}

	tm.getNotifier().SetStatusText(status.TokenNeedsRefresh)
	return tm.Refresh(ctx)
}

// isTokenValid reports whether now + buffer is still before the session expiration.
func (tm *TokenManager) isTokenValid() bool {
	s := tm.Session()
	now := tm.now()
	isValid := now.Add(tm.config.RefreshBufferPeriod).Before(s.AccessTokenExpiration)
	tm.Logger.Debug("Checking token validity", zap.Bool("IsValid", isValid), zap.Duration("TimeUntilExpiry", s.AccessTokenExpiration.Sub(now)))
	return isValid
}

// Refresh exchanges the refresh token for a new access token.
// The new expiration is the previous expiration plus expires_in seconds.
// A non-200 response leaves the session unchanged and is not reported as an error.
func (tm *TokenManager) Refresh(ctx context.Context) error {
	current := tm.Session()
	endpoint := tm.config.Endpoint.TokenURL

	data := url.Values{}
	data.Set("client_id", tm.config.ClientID)
	data.Set("redirect_uri", tm.config.RedirectURI)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", current.RefreshToken)

	tm.Logger.Debug("Attempting to refresh access token",
		zap.String("ClientID", tm.config.ClientID),
		zap.String("RefreshToken", redact.RedactSensitiveHeaderData(tm.config.HideSensitiveData, "RefreshToken", current.RefreshToken)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		tm.Logger.Error("Failed to create request for token refresh", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRefreshTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		tm.Logger.LogAuthTokenError("token_refresh", http.MethodPost, endpoint, 0, err)
		return fmt.Errorf("%w: %v", ErrRefreshTransport, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		tm.Logger.LogAuthTokenError("token_refresh", http.MethodPost, endpoint, resp.StatusCode, err)
		return fmt.Errorf("%w: %v", ErrRefreshTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		tm.Logger.Warn("Token refresh rejected, keeping current session",
			zap.Int("status_code", resp.StatusCode),
			zap.String("status_message", status.TranslateStatusCode(resp.StatusCode)),
		)
		return nil
	}

	oauthResp := &OAuthResponse{}
	if err := json.Unmarshal(bodyBytes, oauthResp); err != nil {
		tm.Logger.LogAuthTokenError("token_refresh", http.MethodPost, endpoint, resp.StatusCode, err)
		return fmt.Errorf("%w: %v", ErrMalformedTokenResponse, err)
	}
	if oauthResp.AccessToken == "" {
		tm.Logger.Error("Empty access token received")
		return fmt.Errorf("%w: empty access_token", ErrMalformedTokenResponse)
	}

	expiresIn := time.Duration(oauthResp.ExpiresIn) * time.Second

	tm.sessionLock.Lock()
	newExpiration := tm.session.AccessTokenExpiration.Add(expiresIn)
	tm.session.AccessToken = oauthResp.AccessToken
	tm.session.AccessTokenExpiration = newExpiration
	if oauthResp.RefreshToken != "" {
		tm.session.RefreshToken = oauthResp.RefreshToken
	}
	tm.sessionLock.Unlock()

	tm.Logger.Info("Access token refreshed successfully",
		zap.String("AccessToken", redact.RedactSensitiveHeaderData(tm.config.HideSensitiveData, "AccessToken", oauthResp.AccessToken)),
		zap.Duration("ExpiresIn", expiresIn),
		zap.Time("ExpirationTime", newExpiration),
	)

	return nil
}
