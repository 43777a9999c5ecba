// httpclient/notifier.go
package httpclient

import (
	"github.com/deploymenttheory/go-onenote-page-client/authenticationhandler"
)

// Notifier is implemented by the presentation layer to render the progress and outcome of a send.
type Notifier interface {
	authenticationhandler.Notifier
	// SetOpenPageVisible shows or hides the "open created page" action.
	SetOpenPageVisible(visible bool)
	// LaunchURI opens the client launch URI of a created page, with its GUIDs already in braces.
	LaunchURI(uri string) error
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) SetCreateActionsEnabled(bool) {}
func (NopNotifier) SetStatusText(string)         {}
func (NopNotifier) SetOpenPageVisible(bool)      {}
func (NopNotifier) LaunchURI(string) error       { return nil }
