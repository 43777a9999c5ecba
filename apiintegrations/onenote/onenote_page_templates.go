// onenote_page_templates.go
package onenote

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const embeddedWebPage = "<html>" +
	"<head>" +
	"<title>Embedded HTML</title>" +
	"</head>" +
	"<body>" +
	"<h1>This is a screen grab of a web page</h1>" +
	"<p>Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nullam vehicula magna quis mauris accumsan, nec imperdiet nisi tempus. Suspendisse potenti. " +
	"Duis vel nulla sit amet turpis venenatis elementum. Cras laoreet quis nisi et sagittis. Donec euismod at tortor ut porta. Duis libero urna, viverra id " +
	"aliquam in, ornare sed orci. Pellentesque condimentum gravida felis, sed pulvinar erat suscipit sit amet. Nulla id felis quis sem blandit dapibus. Ut " +
	"viverra auctor nisi ac egestas. Quisque ac neque nec velit fringilla sagittis porttitor sit amet quam.</p>" +
	"</body>" +
	"</html>"

// FormatTimestamp renders now as an ISO-8601 timestamp with a numeric offset.
func FormatTimestamp(now time.Time) string {
	return now.Format(ISO8601Layout)
}

// pageHTML wraps body markup in the page skeleton shared by every template.
func pageHTML(title string, now time.Time, body string) string {
	return fmt.Sprintf(
		"<html><head><title>%s</title><meta name=\"created\" content=\"%s\" /></head><body>%s</body></html>",
		title, FormatTimestamp(now), body,
	)
}

// BuildSimplePage produces a single part text/html request.
func BuildSimplePage(now time.Time) *PageRequest {
	const title = "A page created from basic HTML-formatted text (Go Sample)"
	return &PageRequest{
		Title:        title,
		Presentation: pageHTML(title, now, "<p>This is a page that just contains some simple <i>formatted</i> <b>text</b></p>"),
	}
}

// BuildPageWithImage produces a multipart request whose presentation embeds the JPEG image part.
func BuildPageWithImage(image io.Reader, now time.Time) *PageRequest {
	const title = "A page with an image on it (Go Sample)"
	body := "<h1>This is a page with an image on it</h1>" +
		"<img src=\"" + PartReferencePrefix + ImagePartName + "\" alt=\"A beautiful logo\" width=\"426\" height=\"68\" />"
	return &PageRequest{
		Title:        title,
		Presentation: pageHTML(title, now, body),
		Parts: []Part{
			{Name: ImagePartName, ContentType: ContentTypeJPEG, Body: image},
		},
	}
}

// BuildPageWithURLSnapshot produces a single part request asking the service to render SnapshotURL.
func BuildPageWithURLSnapshot(now time.Time) *PageRequest {
	const title = "A Page Created With a URL Snapshot on it (Go Sample)"
	body := "<p>This is a page with an image of an html page rendered from a URL on it.</p>" +
		"<img data-render-src=\"" + SnapshotURL + "\" alt=\"An important web page\"/>"
	return &PageRequest{
		Title:        title,
		Presentation: pageHTML(title, now, body),
	}
}

// BuildPageWithHTMLSnapshot produces a multipart request whose embedded HTML part is rendered as an image.
func BuildPageWithHTMLSnapshot(now time.Time) *PageRequest {
	const title = "A Page Created With Snapshot of Webpage in it (Go Sample)"
	body := "<h1>This is a page with an image of an html page on it.</h1>" +
		"<img data-render-src=\"" + PartReferencePrefix + EmbeddedPartName + "\" alt=\"A website screen grab\" />"
	return &PageRequest{
		Title:        title,
		Presentation: pageHTML(title, now, body),
		Parts: []Part{
			{Name: EmbeddedPartName, ContentType: ContentTypeHTML, Body: strings.NewReader(embeddedWebPage)},
		},
	}
}

// BuildPageWithAttachment produces a multipart request attaching a PDF file to the page.
func BuildPageWithAttachment(pdf io.Reader, now time.Time) *PageRequest {
	const title = "A page created with a file attachment (Go Sample)"
	body := "<h1>This is a page with a pdf file attachment</h1>" +
		"<object data-attachment=\"attachment.pdf\" data=\"" + PartReferencePrefix + AttachmentPartName + "\" />"
	return &PageRequest{
		Title:        title,
		Presentation: pageHTML(title, now, body),
		Parts: []Part{
			{Name: AttachmentPartName, ContentType: ContentTypePDF, Body: pdf},
		},
	}
}
