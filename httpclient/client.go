// httpclient/client.go
/* The `httpclient` package sends OneNote create page requests on behalf of a signed-in user.
It renews the access token before each send when needed, enforces that only one create page
request is outstanding at a time, keeps the most recent result and reports every phase to a
Notifier supplied by the presentation layer. */
package httpclient

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/deploymenttheory/go-onenote-page-client/authenticationhandler"
	"github.com/deploymenttheory/go-onenote-page-client/concurrency"
	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"github.com/deploymenttheory/go-onenote-page-client/proxy"
	"github.com/deploymenttheory/go-onenote-page-client/redirecthandler"
	"github.com/deploymenttheory/go-onenote-page-client/response"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Master struct/object
type Client struct {
	// Private
	config   ClientConfig
	http     *http.Client
	notifier Notifier
	now      func() time.Time

	lock         sync.Mutex // lock guards lastResponse.
	lastResponse response.StandardResponse

	// Exported
	Logger       logger.Logger
	TokenManager *authenticationhandler.TokenManager
	Gate         *concurrency.RequestGate
}

// Options/Variables for Client
type ClientConfig struct {
	// OAuth
	ClientID      string `yaml:"client_id"`
	RedirectURI   string `yaml:"redirect_uri"`
	TokenEndpoint string `yaml:"token_endpoint"`
	PagesEndpoint string `yaml:"pages_endpoint"`

	// Log
	LogLevel            string `yaml:"log_level"`
	LogOutputFormat     string `yaml:"log_output_format"` // "json" or "pretty"
	LogConsoleSeparator string `yaml:"log_console_separator"`
	ExportLogs          bool   `yaml:"export_logs"`
	LogExportPath       string `yaml:"log_export_path"`
	HideSensitiveData   bool   `yaml:"hide_sensitive_data"`

	// Misc
	CustomTimeout            time.Duration `yaml:"custom_timeout"`
	TokenRefreshBufferPeriod time.Duration `yaml:"token_refresh_buffer_period"`
	ProxyURL                 string        `yaml:"proxy_url"`
	MaxRedirects             int           `yaml:"max_redirects"`
}

// ClientOption customises a Client built by BuildClient.
type ClientOption func(*Client)

// WithLogger replaces the logger built from the configuration.
func WithLogger(log logger.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.Logger = log
		}
	}
}

// WithHTTPClient replaces the internal HTTP client. Timeout, proxy and redirect settings are not applied to it.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithClock sets the clock used to stamp page creation times.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// BuildClient creates a new create page client with the provided configuration.
// When tokenManager is nil a TokenManager with an empty session is built from config; apply a
// session with TokenManager.ApplySession before sending. A nil notifier discards notifications.
func BuildClient(config ClientConfig, tokenManager *authenticationhandler.TokenManager, notifier Notifier, opts ...ClientOption) (*Client, error) {
	SetDefaultValuesClientConfig(&config)

	if err := validateClientConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if notifier == nil {
		notifier = NopNotifier{}
	}

	client := &Client{
		config:   config,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}

	//region Logging

	if client.Logger == nil {
		log, err := buildLogger(config)
		if err != nil {
			return nil, err
		}
		client.Logger = log
	}
	log := client.Logger

	//endregion

	//region HTTP

	if client.http == nil {
		client.http = &http.Client{Timeout: config.CustomTimeout}
		if err := proxy.InitializeProxy(client.http, config.ProxyURL, log); err != nil {
			log.Error("Failed to configure proxy", zap.Error(err))
			return nil, err
		}
		if err := redirecthandler.SetupRedirectHandler(client.http, config.MaxRedirects, log); err != nil {
			return nil, err
		}
	}

	//endregion

	//region Session

	if tokenManager == nil {
		tokenManager = authenticationhandler.NewTokenManager(authenticationhandler.TokenManagerConfig{
			ClientID:            config.ClientID,
			RedirectURI:         config.RedirectURI,
			Endpoint:            oauth2.Endpoint{TokenURL: config.TokenEndpoint, AuthStyle: oauth2.AuthStyleInParams},
			RefreshBufferPeriod: config.TokenRefreshBufferPeriod,
			HideSensitiveData:   config.HideSensitiveData,
		}, client.http, log)
	}
	if _, ok := notifier.(NopNotifier); !ok {
		tokenManager.SetNotifier(notifier)
	}
	client.TokenManager = tokenManager

	//endregion

	client.Gate = concurrency.NewRequestGate(log)

	log.Debug("New OneNote page client initialized",
		zap.String("Client ID", config.ClientID),
		zap.String("Pages Endpoint", config.PagesEndpoint),
		zap.String("Token Endpoint", config.TokenEndpoint),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.HideSensitiveData),
		zap.Duration("Token Refresh Buffer Period", config.TokenRefreshBufferPeriod),
		zap.Duration("Custom Timeout", config.CustomTimeout),
		zap.Bool("Proxy Enabled", config.ProxyURL != ""),
		zap.Int("Max Redirects", config.MaxRedirects),
	)

	return client, nil
}

// buildLogger creates the zap backed logger described by the log settings of config.
func buildLogger(config ClientConfig) (logger.Logger, error) {
	parsedLogLevel := logger.ParseLogLevelFromString(config.LogLevel)

	encoding := logger.EncodingConsole
	if config.LogOutputFormat == "json" {
		encoding = logger.EncodingJSON
	}

	logPath := ""
	if config.ExportLogs {
		var err error
		logPath, err = logger.EnsureLogFilePath(config.LogExportPath)
		if err != nil {
			return nil, fmt.Errorf("preparing log export path: %w", err)
		}
	}

	log := logger.BuildLogger(parsedLogLevel, encoding, config.LogConsoleSeparator, logPath, config.HideSensitiveData)
	log.SetLevel(parsedLogLevel)
	return log, nil
}

// Config returns a copy of the client configuration after defaults were applied.
func (c *Client) Config() ClientConfig {
	return c.config
}
