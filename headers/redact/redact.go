// headers/redact/redact.go
package redact

import "net/textproto"

// sensitiveKeys are matched after canonicalisation, so "authorization" and "Authorization" are equal.
var sensitiveKeys = map[string]bool{
	"Accesstoken":   true,
	"Authorization": true,
	"Access_token":  true,
	"Refresh_token": true,
	"Refreshtoken":  true,
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && sensitiveKeys[textproto.CanonicalMIMEHeaderKey(key)] {
		return "REDACTED"
	}
	return value
}
