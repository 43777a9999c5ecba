package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/deploymenttheory/go-onenote-page-client/authenticationhandler"
	"github.com/deploymenttheory/go-onenote-page-client/httpclient"
	"github.com/joho/godotenv"
)

const (
	envAccessToken        = httpclient.EnvPrefix + "ACCESS_TOKEN"
	envAccessTokenExpires = httpclient.EnvPrefix + "ACCESS_TOKEN_EXPIRES"
	envRefreshToken       = httpclient.EnvPrefix + "REFRESH_TOKEN"
)

// sessionFromEnv reads the sign-in state handed over by the identity provider.
// A missing access token means not connected. A missing expiry is treated as already expired so
// the first send refreshes the token.
func sessionFromEnv(lookup func(string) (string, bool), now time.Time) (authenticationhandler.SessionStatus, authenticationhandler.SessionInfo, error) {
	accessToken, _ := lookup(envAccessToken)
	if accessToken == "" {
		return authenticationhandler.SessionStatusNotConnected, authenticationhandler.SessionInfo{}, nil
	}

	info := authenticationhandler.SessionInfo{AccessToken: accessToken, Expires: now}
	info.RefreshToken, _ = lookup(envRefreshToken)

	if raw, ok := lookup(envAccessTokenExpires); ok && raw != "" {
		expires, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return authenticationhandler.SessionStatusUnknown, authenticationhandler.SessionInfo{}, fmt.Errorf("invalid %s: %w", envAccessTokenExpires, err)
		}
		info.Expires = expires
	}

	return authenticationhandler.SessionStatusConnected, info, nil
}

// loadConfig reads the client configuration from configPath, or from the environment when empty.
// The default .env file is loaded in both cases so session variables can live next to the settings.
func loadConfig(configPath string) (*httpclient.ClientConfig, error) {
	if configPath == "" {
		return httpclient.LoadConfigFromEnv()
	}

	if _, err := os.Stat(httpclient.DefaultEnvFile); err == nil {
		if err := godotenv.Load(httpclient.DefaultEnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", httpclient.DefaultEnvFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return httpclient.LoadConfigFromFile(configPath)
}
