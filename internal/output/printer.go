// Package output formats everything the CLI shows to the user.
//
// All user-facing text goes through a [Printer]; diagnostics go to the logger
// instead. Styling uses lipgloss bound to the printer's writer, so output to a
// file or buffer carries no escape codes. Longer texts can be rendered as
// markdown with glamour.
//
// Key types:
//   - [Printer] - styled line output with an injectable writer
//   - [MarkdownOptions] - glamour settings
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownOptions controls markdown rendering.
type MarkdownOptions struct {
	Enabled  bool
	Style    string
	WordWrap int
	Emoji    bool
}

// Printer writes styled output.
//
// Create with [NewPrinter] for stdout or [NewPrinterWithWriter] for tests.
type Printer struct {
	w        io.Writer
	styles   styles
	markdown MarkdownOptions
}

// NewPrinter creates a [Printer] writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] writing to w. Markdown rendering is
// off until [Printer.SetMarkdown] enables it.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

// SetMarkdown configures markdown rendering.
func (p *Printer) SetMarkdown(opts MarkdownOptions) {
	p.markdown = opts
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

// Title prints a bold heading.
func (p *Printer) Title(text string) {
	p.line(p.styles.title.Render(text))
}

// Success prints a confirmation.
func (p *Printer) Success(format string, args ...any) {
	p.line(p.styles.success.Render("✓ " + fmt.Sprintf(format, args...)))
}

// Warning prints a non-fatal notice.
func (p *Printer) Warning(format string, args ...any) {
	p.line(p.styles.warning.Render("! " + fmt.Sprintf(format, args...)))
}

// Error prints a failure.
func (p *Printer) Error(format string, args ...any) {
	p.line(p.styles.err.Render("✗ " + fmt.Sprintf(format, args...)))
}

// Info prints a plain line.
func (p *Printer) Info(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Muted prints a dimmed line.
func (p *Printer) Muted(format string, args ...any) {
	p.line(p.styles.muted.Render(fmt.Sprintf(format, args...)))
}

// KeyValue prints "key: value" with a bold key.
func (p *Printer) KeyValue(key string, value any) {
	p.line(fmt.Sprintf("%s %v", p.styles.key.Render(key+":"), value))
}

// Bullet prints an indented list item.
func (p *Printer) Bullet(format string, args ...any) {
	p.line("  • " + fmt.Sprintf(format, args...))
}

// Check prints a list item marked done or open.
func (p *Printer) Check(done bool, format string, args ...any) {
	mark := p.styles.muted.Render("[ ]")
	if done {
		mark = p.styles.locked.Render("[x]")
	}
	p.line("  " + mark + " " + fmt.Sprintf(format, args...))
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Raw prints text exactly as given followed by a newline.
func (p *Printer) Raw(text string) {
	fmt.Fprint(p.w, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(p.w)
	}
}

// Markdown prints text rendered as markdown when enabled, otherwise raw.
// Rendering failures fall back to raw text.
func (p *Printer) Markdown(text string) {
	if !p.markdown.Enabled || strings.TrimSpace(text) == "" {
		p.Raw(text)
		return
	}
	out, err := renderMarkdown(text, p.markdown)
	if err != nil {
		p.Raw(text)
		return
	}
	p.Raw(out)
}

func renderMarkdown(text string, opts MarkdownOptions) (string, error) {
	style := opts.Style
	if style == "" {
		style = "dark"
	}
	width := opts.WordWrap
	if width <= 0 {
		width = 100
	}

	ropts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	}
	if opts.Emoji {
		ropts = append(ropts, glamour.WithEmoji())
	}

	r, err := glamour.NewTermRenderer(ropts...)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(text)
}
