// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clipboard copies extracted values to the system clipboard, or to
// a writer when no clipboard is available.
package clipboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the platform has no clipboard utility.
var ErrUnsupported = errors.New("system clipboard is not available")

// Clipboard receives plain UTF-8 text.
type Clipboard interface {
	Copy(text string) error
}

// System is the operating system clipboard.
type System struct{}

// Copy replaces the clipboard contents with text.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// Writer prints copied text to W, one copy per call.
type Writer struct {
	W io.Writer
}

// Copy writes text followed by a newline.
func (w Writer) Copy(text string) error {
	_, err := fmt.Fprintln(w.W, text)
	return err
}

// Default returns the system clipboard when one is available, otherwise a
// Writer on fallback.
func Default(fallback io.Writer) Clipboard {
	if clipboard.Unsupported {
		return Writer{W: fallback}
	}
	return System{}
}
