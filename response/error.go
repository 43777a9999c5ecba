// response/error.go
// Best-effort extraction of diagnostics from create page error bodies.
package response

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
)

// serviceError is the JSON error envelope returned by the pages API.
type serviceError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		APIURL  string `json:"@api.url"`
	} `json:"error"`
	Message string `json:"message"`
}

// parseErrorDetails returns the service error code (JSON bodies only) and any human readable
// messages found in the body, dispatching on the MIME type of contentType.
func parseErrorDetails(contentType string, bodyBytes []byte) (string, []string) {
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return "", nil
	}

	mimeType, _ := parseHeader(contentType)
	switch mimeType {
	case "application/json":
		return parseJSONResponse(bodyBytes)
	case "application/xml", "text/xml":
		return "", parseXMLResponse(bodyBytes)
	case "text/html":
		return "", parseHTMLResponse(bodyBytes)
	case "text/plain":
		return "", []string{strings.TrimSpace(string(bodyBytes))}
	default:
		return "", nil
	}
}

// parseJSONResponse reads the {"error":{"code","message","@api.url"}} envelope, falling back to a top level message.
func parseJSONResponse(bodyBytes []byte) (string, []string) {
	var parsed serviceError
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", nil
	}

	if parsed.Error != nil {
		var details []string
		if parsed.Error.Message != "" {
			details = append(details, parsed.Error.Message)
		}
		if parsed.Error.APIURL != "" {
			details = append(details, "[Link: "+parsed.Error.APIURL+"]")
		}
		return parsed.Error.Code, details
	}

	if parsed.Message != "" {
		return "", []string{parsed.Message}
	}
	return "", nil
}

// parseXMLResponse accumulates every non-empty text node of an XML error body.
func parseXMLResponse(bodyBytes []byte) []string {
	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return nil
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return messages
}

// parseHTMLResponse concatenates the text of each <p> element, including the targets of links inside it.
func parseHTMLResponse(bodyBytes []byte) []string {
	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return nil
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			var pContent strings.Builder
			var traverseChildren func(*html.Node)
			traverseChildren = func(c *html.Node) {
				if c.Type == html.TextNode {
					pContent.WriteString(strings.TrimSpace(c.Data) + " ")
				} else if c.Type == html.ElementNode && c.Data == "a" {
					for _, attr := range c.Attr {
						if attr.Key == "href" {
							pContent.WriteString("[Link: " + attr.Val + "] ")
							break
						}
					}
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					traverseChildren(child)
				}
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				traverseChildren(child)
			}
			if finalContent := strings.TrimSpace(pContent.String()); finalContent != "" {
				messages = append(messages, finalContent)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}
	parse(doc)

	return messages
}
