package httpclient

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ConfigFileExtensions lists the accepted configuration file extensions.
var ConfigFileExtensions = []string{".yaml", ".yml"}

// validateFilePath resolves symlinks and rejects traversal patterns and non-YAML files.
func validateFilePath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the absolute path of the configuration file: %s, error: %w", path, err)
	}

	if strings.Contains(absPath, "..") {
		return "", fmt.Errorf("invalid path, path traversal patterns detected: %s", path)
	}

	if !slices.Contains(ConfigFileExtensions, strings.ToLower(filepath.Ext(absPath))) {
		return "", fmt.Errorf("invalid file extension for configuration file: %s, expected .yaml or .yml", path)
	}

	return absPath, nil
}
