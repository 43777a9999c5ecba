// onenote_page_request.go
package onenote

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrUnmatchedPartReference is returned when the presentation HTML references a part that does not exist.
	ErrUnmatchedPartReference = errors.New("onenote: presentation references a part that is not in the request")
	// ErrUnreferencedPart is returned when a part is never referenced by the presentation HTML.
	ErrUnreferencedPart = errors.New("onenote: part is not referenced by the presentation")
	// ErrDuplicatePart is returned when two parts share a name.
	ErrDuplicatePart = errors.New("onenote: duplicate part name")
	// ErrInvalidPart is returned for parts with an empty or reserved name, or without a body.
	ErrInvalidPart = errors.New("onenote: invalid part")
)

// referenceAttributes are the attributes through which the service resolves name:<part> values.
var referenceAttributes = map[string]bool{
	"src":             true,
	"data-render-src": true,
	"data":            true,
}

// Part is one named, content-typed section of a multipart create page request.
// Body is owned by the caller and must stay readable until the request has been sent.
type Part struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// PageRequest describes one create page call. A request without Parts is sent as a single
// text/html body; otherwise Presentation becomes the "Presentation" part of a multipart body.
type PageRequest struct {
	Title        string
	Presentation string
	Parts        []Part
}

// IsMultipart reports whether the request carries auxiliary parts.
func (r *PageRequest) IsMultipart() bool {
	return len(r.Parts) > 0
}

// PartNames returns the names of the auxiliary parts in request order.
func (r *PageRequest) PartNames() []string {
	names := make([]string, 0, len(r.Parts))
	for _, part := range r.Parts {
		names = append(names, part.Name)
	}
	return names
}

// References returns every name:<part> reference found in the presentation HTML, in document order.
func (r *PageRequest) References() []string {
	var refs []string
	tokenizer := html.NewTokenizer(strings.NewReader(r.Presentation))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return refs
		case html.StartTagToken, html.SelfClosingTagToken:
			for _, attr := range tokenizer.Token().Attr {
				if referenceAttributes[attr.Key] && strings.HasPrefix(attr.Val, PartReferencePrefix) {
					refs = append(refs, strings.TrimPrefix(attr.Val, PartReferencePrefix))
				}
			}
		}
	}
}

// Validate checks that every name:<part> reference has exactly one matching part and that
// every part is referenced.
func (r *PageRequest) Validate() error {
	parts := make(map[string]bool, len(r.Parts))
	for _, part := range r.Parts {
		if part.Name == "" || part.Name == PresentationPartName || part.Body == nil {
			return fmt.Errorf("%w: %q", ErrInvalidPart, part.Name)
		}
		if parts[part.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicatePart, part.Name)
		}
		parts[part.Name] = true
	}

	referenced := make(map[string]bool)
	for _, ref := range r.References() {
		if !parts[ref] {
			return fmt.Errorf("%w: %q", ErrUnmatchedPartReference, ref)
		}
		referenced[ref] = true
	}

	for _, part := range r.Parts {
		if !referenced[part.Name] {
			return fmt.Errorf("%w: %q", ErrUnreferencedPart, part.Name)
		}
	}

	return nil
}
