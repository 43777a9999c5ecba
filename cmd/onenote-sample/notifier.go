package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
)

// consoleNotifier renders client notifications as status lines.
type consoleNotifier struct {
	out io.Writer

	mu             sync.Mutex
	actionsEnabled bool
	openVisible    bool
	launched       string
}

func newConsoleNotifier(out io.Writer) *consoleNotifier {
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) SetCreateActionsEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.actionsEnabled = enabled
}

func (n *consoleNotifier) SetStatusText(status string) {
	fmt.Fprintf(n.out, "%s %s\n", text.FgHiBlue.Sprint("status:"), status)
}

func (n *consoleNotifier) SetOpenPageVisible(visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.openVisible = visible
}

// LaunchURI prints the launch URI; a terminal has no handler for the onenote: scheme.
func (n *consoleNotifier) LaunchURI(uri string) error {
	n.mu.Lock()
	n.launched = uri
	n.mu.Unlock()

	fmt.Fprintf(n.out, "%s %s\n", text.FgHiGreen.Sprint("open:"), uri)
	return nil
}

func (n *consoleNotifier) canOpenPage() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.openVisible
}
