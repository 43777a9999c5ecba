// response/launch.go
package response

import (
	"net/url"
	"regexp"
	"strings"
)

// launchGUIDPattern matches a GUID that sits between '=' and '&' in a client launch URL.
var launchGUIDPattern = regexp.MustCompile(`(?i)=([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})&`)

// FormulateLaunchURIString rewrites a oneNoteClientUrl so the native client can open it.
// When the URL carries exactly two "=<guid>&" occurrences (section and page identifiers),
// each GUID is wrapped in curly braces in place. Any other count leaves the string untouched.
func FormulateLaunchURIString(clientURL string) string {
	matches := launchGUIDPattern.FindAllStringSubmatchIndex(clientURL, -1)
	if len(matches) != 2 {
		return clientURL
	}

	var b strings.Builder
	b.Grow(len(clientURL) + 4)
	last := 0
	for _, m := range matches {
		// m[2]:m[3] is the GUID capture group.
		b.WriteString(clientURL[last:m[2]])
		b.WriteByte('{')
		b.WriteString(clientURL[m[2]:m[3]])
		b.WriteByte('}')
		last = m[3]
	}
	b.WriteString(clientURL[last:])

	return b.String()
}

// FormulateLaunchURI returns the parsed launch URI for clientURL, or nil when clientURL is empty.
// It validates the rewritten URL; (*url.URL).String percent-escapes the braces in the fragment,
// so the URI handed to a launcher is FormulateLaunchURIString, not the re-serialized form.
func FormulateLaunchURI(clientURL string) (*url.URL, error) {
	if clientURL == "" {
		return nil, nil
	}
	return url.Parse(FormulateLaunchURIString(clientURL))
}
