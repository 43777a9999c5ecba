// httpclient/client_configuration.go
// Description: This file contains functions to load and validate configuration values from a YAML file or environment variables.
package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/deploymenttheory/go-onenote-page-client/apiintegrations/onenote"
	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevelString           = "LogLevelInfo"
	DefaultLogOutputFormatString    = "pretty"
	DefaultLogConsoleSeparator      = "	"
	DefaultLogExportPath            = "logs"
	DefaultCustomTimeout            = time.Duration(0)
	DefaultTokenRefreshBufferPeriod = time.Duration(0)
	DefaultMaxRedirects             = 5
	DefaultEnvFile                  = ".env"
	EnvPrefix                       = "ONENOTE_"
)

var (
	// ErrMissingClientID is returned when no client ID is configured.
	ErrMissingClientID = errors.New("client id is required")
	// ErrPlaceholderClientID is returned when the sample placeholder client ID was not replaced.
	ErrPlaceholderClientID = fmt.Errorf("client id is still the placeholder %q, see %s", onenote.PlaceholderClientID, onenote.ClientIDInstructionsURL)
)

var validLogFormats = []string{"json", "pretty"}

// LoadConfigFromFile loads configuration values from a YAML file and fills defaults for missing fields.
func LoadConfigFromFile(configPath string) (*ClientConfig, error) {
	filepath, err := validateFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to clean/validate filepath (%s): %w", configPath, err)
	}

	fileBytes, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read the configuration file: %s, error: %w", filepath, err)
	}

	var config ClientConfig
	if err := yaml.Unmarshal(fileBytes, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the configuration file: %s, error: %w", filepath, err)
	}

	SetDefaultValuesClientConfig(&config)

	return &config, nil
}

// LoadConfigFromEnv builds a configuration from ONENOTE_* environment variables.
// The given dotenv files (or ".env" when none are given) are loaded first when they exist;
// variables already set in the environment take precedence over the files.
func LoadConfigFromEnv(envFiles ...string) (*ClientConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, file := range envFiles {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	config := &ClientConfig{
		ClientID:            getEnvOrDefault("CLIENT_ID", ""),
		RedirectURI:         getEnvOrDefault("REDIRECT_URI", ""),
		TokenEndpoint:       getEnvOrDefault("TOKEN_ENDPOINT", ""),
		PagesEndpoint:       getEnvOrDefault("PAGES_ENDPOINT", ""),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", ""),
		LogOutputFormat:     getEnvOrDefault("LOG_OUTPUT_FORMAT", ""),
		LogConsoleSeparator: getEnvOrDefault("LOG_CONSOLE_SEPARATOR", ""),
		LogExportPath:       getEnvOrDefault("LOG_EXPORT_PATH", ""),
		ProxyURL:            getEnvOrDefault("PROXY_URL", ""),
	}

	var err error
	if config.ExportLogs, err = parseBool("EXPORT_LOGS", false); err != nil {
		return nil, err
	}
	if config.HideSensitiveData, err = parseBool("HIDE_SENSITIVE_DATA", false); err != nil {
		return nil, err
	}
	if config.CustomTimeout, err = parseDuration("CUSTOM_TIMEOUT", DefaultCustomTimeout); err != nil {
		return nil, err
	}
	if config.TokenRefreshBufferPeriod, err = parseDuration("TOKEN_REFRESH_BUFFER_PERIOD", DefaultTokenRefreshBufferPeriod); err != nil {
		return nil, err
	}
	if config.MaxRedirects, err = parseInt("MAX_REDIRECTS", 0); err != nil {
		return nil, err
	}

	SetDefaultValuesClientConfig(config)

	return config, nil
}

// validateClientConfig checks a configuration that already has defaults applied.
func validateClientConfig(config ClientConfig) error {
	switch config.ClientID {
	case "":
		return ErrMissingClientID
	case onenote.PlaceholderClientID:
		return ErrPlaceholderClientID
	}

	if !slices.Contains(logger.ValidLogLevels, config.LogLevel) {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	if !slices.Contains(validLogFormats, config.LogOutputFormat) {
		return fmt.Errorf("invalid log output format: %s", config.LogOutputFormat)
	}

	if config.CustomTimeout < 0 {
		return errors.New("timeout cannot be less than 0 seconds")
	}

	if config.TokenRefreshBufferPeriod < 0 {
		return errors.New("refresh buffer period cannot be less than 0 seconds")
	}

	if config.MaxRedirects < 1 {
		return fmt.Errorf("max redirects must be at least 1, got %d", config.MaxRedirects)
	}

	for name, endpoint := range map[string]string{
		"pages endpoint": config.PagesEndpoint,
		"token endpoint": config.TokenEndpoint,
		"redirect uri":   config.RedirectURI,
	} {
		if err := validateEndpoint(endpoint); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}

// validateEndpoint requires an absolute http or https URL.
func validateEndpoint(endpoint string) error {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%q must use http or https", endpoint)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%q has no host", endpoint)
	}
	return nil
}

// SetDefaultValuesClientConfig fills empty fields with the OneNote and Microsoft account defaults.
// Zero durations are kept: no timeout, and refresh exactly when the token has expired.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	setDefaultString(&config.RedirectURI, onenote.DefaultTokenRedirectURI)
	setDefaultString(&config.TokenEndpoint, onenote.DefaultTokenEndpoint)
	setDefaultString(&config.PagesEndpoint, onenote.DefaultPagesEndpoint)
	setDefaultString(&config.LogLevel, DefaultLogLevelString)
	setDefaultString(&config.LogOutputFormat, DefaultLogOutputFormatString)
	setDefaultString(&config.LogConsoleSeparator, DefaultLogConsoleSeparator)
	if config.ExportLogs {
		setDefaultString(&config.LogExportPath, DefaultLogExportPath)
	}
	if config.MaxRedirects == 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
}

func setDefaultString(field *string, defaultValue string) {
	if *field == "" {
		*field = defaultValue
	}
}

// Helper function to get an ONENOTE_ prefixed environment variable or a default value
func getEnvOrDefault(envKey string, defaultValue string) string {
	if value, exists := os.LookupEnv(EnvPrefix + envKey); exists {
		return value
	}
	return defaultValue
}

// Helper function to parse a boolean environment variable
func parseBool(envKey string, defaultValue bool) (bool, error) {
	value := getEnvOrDefault(envKey, "")
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %w", EnvPrefix, envKey, err)
	}
	return result, nil
}

// Helper function to parse an integer environment variable
func parseInt(envKey string, defaultValue int) (int, error) {
	value := getEnvOrDefault(envKey, "")
	if value == "" {
		return defaultValue, nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, envKey, err)
	}
	return result, nil
}

// Helper function to parse a duration environment variable
func parseDuration(envKey string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnvOrDefault(envKey, "")
	if value == "" {
		return defaultValue, nil
	}
	result, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, envKey, err)
	}
	return result, nil
}
