// Package assembler turns a session snapshot into the final prompt text.
//
// The deterministic algorithm ([Render]) is the contract of record: it needs
// nothing but the snapshot and always produces a complete prompt. An optional
// [Enhancer] may tidy that prompt through an external service; any failure
// of the enhancer silently yields the deterministic text instead.
//
// Key types:
//   - [Options] - header template, default name and closing directive
//   - [Assembler] - runs the enhancer with a timeout and falls back
//   - [Enhancer] - capability interface for tidying a rendered prompt
//   - [Result] - assembled text, its source and the swallowed error
package assembler

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"idealauncher/internal/idea"
)

// Defaults used when [Options] fields are empty.
const (
	DefaultName = "My App"

	DefaultHeaderTemplate = `I want to build an app called "{{.Name}}".` +
		`{{if .Concept}} It starts from the {{.Concept.Title}} concept: {{.Concept.Description}}{{end}}` +
		`{{if .Sparks}} It was sparked by: {{join .Sparks ", "}}.{{end}}`

	DefaultClosingDirective = "Build this using React and Tailwind CSS. Make it look high-class and vibe-code ready."
)

// Options controls the deterministic rendering.
type Options struct {
	// DefaultName replaces a blank display name.
	DefaultName string

	// HeaderTemplate is a text/template rendered with [HeaderData].
	HeaderTemplate string

	// ClosingDirective is the fixed last paragraph naming the build stack.
	ClosingDirective string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.DefaultName) == "" {
		o.DefaultName = DefaultName
	}
	if strings.TrimSpace(o.HeaderTemplate) == "" {
		o.HeaderTemplate = DefaultHeaderTemplate
	}
	if strings.TrimSpace(o.ClosingDirective) == "" {
		o.ClosingDirective = DefaultClosingDirective
	}
	return o
}

// HeaderData is passed to the header template.
type HeaderData struct {
	// Name is the display name, or the default name when blank.
	Name string

	// Concept is the curated concept the session started from, if any.
	Concept *idea.Concept

	// Sparks are the free-text sparks the session started from, if any.
	Sparks []string
}

var funcs = template.FuncMap{"join": strings.Join}

// ValidateHeader reports whether tmpl parses as a header template.
func ValidateHeader(tmpl string) error {
	_, err := template.New("header").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("invalid header template: %w", err)
	}
	return nil
}

func expandHeader(tmpl string, data HeaderData) (string, error) {
	t, err := template.New("header").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid header template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render header: %w", err)
	}
	return buf.String(), nil
}

// Render produces the deterministic prompt for a snapshot.
//
// Layout:
//
//	<header>
//
//	<Label>: "<stage text>"        one line per stage, declaration order
//
//	<HEADING>:
//	- <approved text>              or the category placeholder
//
//	<closing directive>
//
// The same snapshot and options always produce byte-identical output. An error
// is returned only when the header template can not be rendered.
func Render(snap idea.Snapshot, opts Options) (string, error) {
	opts = opts.withDefaults()

	name := strings.TrimSpace(snap.DisplayName)
	if name == "" {
		name = opts.DefaultName
	}
	header, err := expandHeader(opts.HeaderTemplate, HeaderData{
		Name:    name,
		Concept: snap.Concept,
		Sparks:  snap.Selection.Sparks,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(header))
	b.WriteString("\n\n")

	for _, st := range snap.Stages {
		fmt.Fprintf(&b, "%s: \"%s\"\n", st.Label, st.Text)
	}

	for _, sec := range snap.Sections {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s:\n", heading(sec.Category))
		if len(sec.Approved) == 0 {
			fmt.Fprintf(&b, "- %s\n", placeholder(sec.Category))
			continue
		}
		for _, text := range sec.Approved {
			fmt.Fprintf(&b, "- %s\n", text)
		}
	}

	b.WriteString("\n")
	b.WriteString(opts.ClosingDirective)
	return b.String(), nil
}

func heading(c idea.CategorySpec) string {
	if c.Heading != "" {
		return c.Heading
	}
	return strings.ToUpper(string(c.ID))
}

func placeholder(c idea.CategorySpec) string {
	p := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.Placeholder), "-"))
	if p != "" {
		return p
	}
	return "Whatever fits the idea best"
}
