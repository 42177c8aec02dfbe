// Package clipboard exports the assembled prompt to the system clipboard.
//
// Key types:
//   - [System] - the OS clipboard via github.com/atotto/clipboard
//   - [MockExporter] - records writes for tests
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available, for
// example on a headless Linux box without xclip, xsel or wl-copy.
var ErrUnsupported = errors.New("clipboard is not available on this system")

// System writes to the operating system clipboard.
type System struct{}

// NewSystem creates a [System] exporter.
func NewSystem() *System {
	return &System{}
}

// Write copies text to the clipboard.
func (s *System) Write(text string) error {
	if clipboardUnsupported() {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// MockExporter records exported texts. When Err is set, Write fails with it.
type MockExporter struct {
	Err     error
	Written []string
}

// Write records text or returns the configured error.
func (m *MockExporter) Write(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Written = append(m.Written, text)
	return nil
}

// Last returns the most recently written text.
func (m *MockExporter) Last() string {
	if len(m.Written) == 0 {
		return ""
	}
	return m.Written[len(m.Written)-1]
}

func clipboardUnsupported() bool {
	return clipboard.Unsupported
}
