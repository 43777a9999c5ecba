package onenote

// Endpoint constants for the OneNote pages API and the Microsoft account token service.
const (
	// APIName represents the name of the API.
	APIName = "onenote"
	// DefaultPagesEndpoint is the OneNote Service API v1.0 create page endpoint.
	DefaultPagesEndpoint = "https://www.onenote.com/api/v1.0/pages"
	// DefaultTokenEndpoint is the Microsoft account token refresh endpoint.
	DefaultTokenEndpoint = "https://login.live.com/oauth20_token.srf"
	// DefaultTokenRedirectURI is the redirect_uri sent with refresh requests.
	DefaultTokenRedirectURI = "https://login.live.com/oauth20_desktop.srf"
	// PlaceholderClientID is shipped in sample configuration and must be replaced.
	PlaceholderClientID = "Insert Your Client Id Here"
	// ClientIDInstructionsURL explains how to obtain a client ID.
	ClientIDInstructionsURL = "http://go.microsoft.com/fwlink/?LinkId=392537"
)

// Part names and content types used in create page requests.
const (
	PresentationPartName = "Presentation"
	ImagePartName        = "image1"
	EmbeddedPartName     = "embedded1"
	AttachmentPartName   = "pdfattachment1"

	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePDF  = "application/pdf"

	// PartReferencePrefix marks an attribute value that the service resolves to a named part.
	PartReferencePrefix = "name:"

	// SnapshotURL is the external page rendered by BuildPageWithURLSnapshot.
	SnapshotURL = "http://www.onenote.com"

	// ISO8601Layout renders timestamps like the round-trip "o" format: 7 fractional digits and a numeric offset.
	ISO8601Layout = "2006-01-02T15:04:05.0000000-07:00"
)
