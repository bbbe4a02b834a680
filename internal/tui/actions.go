package tui

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(url string) error
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// BrowserOpener opens URLs in the system browser.
type BrowserOpener struct{}

// Open launches the default browser. The helper process output is discarded
// so it cannot draw over the table.
func (BrowserOpener) Open(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

// Open calls f(url).
func (f OpenerFunc) Open(url string) error {
	return f(url)
}
