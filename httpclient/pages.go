// httpclient/pages.go
package httpclient

import (
	"context"
	"errors"
	"io"

	"github.com/deploymenttheory/go-onenote-page-client/apiintegrations/onenote"
	"github.com/deploymenttheory/go-onenote-page-client/response"
	"go.uber.org/zap"
)

// ErrNoCreatedPage is returned by OpenCreatedPage when the most recent send did not create a page.
var ErrNoCreatedPage = errors.New("no created page to open")

// CreateSimplePage creates a page with formatted HTML text.
func (c *Client) CreateSimplePage(ctx context.Context) (response.StandardResponse, error) {
	return c.SendCreatePageRequest(ctx, onenote.BuildSimplePage(c.now()))
}

// CreatePageWithImage creates a page with an inline JPEG image read from image.
// image must stay readable until the call returns.
func (c *Client) CreatePageWithImage(ctx context.Context, image io.Reader) (response.StandardResponse, error) {
	return c.SendCreatePageRequest(ctx, onenote.BuildPageWithImage(image, c.now()))
}

// CreatePageWithURLSnapshot creates a page with a snapshot of an external web page rendered by the service.
func (c *Client) CreatePageWithURLSnapshot(ctx context.Context) (response.StandardResponse, error) {
	return c.SendCreatePageRequest(ctx, onenote.BuildPageWithURLSnapshot(c.now()))
}

// CreatePageWithHTMLSnapshot creates a page with a snapshot of HTML sent in the request.
func (c *Client) CreatePageWithHTMLSnapshot(ctx context.Context) (response.StandardResponse, error) {
	return c.SendCreatePageRequest(ctx, onenote.BuildPageWithHTMLSnapshot(c.now()))
}

// CreatePageWithAttachment creates a page with a PDF attachment read from pdf.
// pdf must stay readable until the call returns.
func (c *Client) CreatePageWithAttachment(ctx context.Context, pdf io.Reader) (response.StandardResponse, error) {
	return c.SendCreatePageRequest(ctx, onenote.BuildPageWithAttachment(pdf, c.now()))
}

// OpenCreatedPage hands the launch URI of the most recently created page to the Notifier.
func (c *Client) OpenCreatedPage() error {
	success, ok := c.LastResponse().(*response.CreateSuccess)
	if !ok {
		return ErrNoCreatedPage
	}

	uri, err := response.FormulateLaunchURI(success.OneNoteClientURL)
	if err != nil {
		c.Logger.Error("Failed to parse client launch URI", zap.String("client_url", success.OneNoteClientURL), zap.Error(err))
		return err
	}
	if uri == nil {
		return ErrNoCreatedPage
	}

	launchURI := response.FormulateLaunchURIString(success.OneNoteClientURL)
	c.Logger.Info("Opening created page", zap.String("launch_uri", launchURI))
	return c.notifier.LaunchURI(launchURI)
}
