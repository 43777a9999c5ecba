// proxy.go

package proxy

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/deploymenttheory/go-onenote-page-client/logger"
	"go.uber.org/zap"
)

// ErrUnsupportedProxyScheme is returned for proxy URLs that are not http, https or socks5.
var ErrUnsupportedProxyScheme = errors.New("unsupported proxy scheme")

// InitializeProxy routes the client's traffic to both the token and pages endpoints through proxyURL.
// Credentials embedded in the URL are used for proxy authentication. An empty proxyURL leaves the client untouched.
func InitializeProxy(httpClient *http.Client, proxyURL string, log logger.Logger) error {
	if proxyURL == "" {
		return nil
	}

	parsedProxyURL, err := url.Parse(proxyURL)
	if err != nil {
		log.Error("Failed to parse proxy URL", zap.Error(err))
		return err
	}

	switch parsedProxyURL.Scheme {
	case "http", "https", "socks5":
	default:
		log.Error("Unsupported proxy scheme", zap.String("Scheme", parsedProxyURL.Scheme))
		return fmt.Errorf("%w: %q", ErrUnsupportedProxyScheme, parsedProxyURL.Scheme)
	}

	transport := &http.Transport{Proxy: http.ProxyURL(parsedProxyURL)}
	if parsedProxyURL.User != nil {
		transport.ProxyConnectHeader = http.Header{
			"Proxy-Authorization": []string{"Basic " + basicAuth(parsedProxyURL.User)},
		}
	}
	httpClient.Transport = transport

	log.Info("Proxy configured", zap.String("ProxyHost", parsedProxyURL.Host))
	return nil
}

// basicAuth encodes proxy credentials for the Proxy-Authorization header.
func basicAuth(user *url.Userinfo) string {
	password, _ := user.Password()
	return base64.StdEncoding.EncodeToString([]byte(user.Username() + ":" + password))
}
