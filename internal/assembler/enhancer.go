package assembler

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"idealauncher/internal/gemini"
	"idealauncher/internal/idea"
)

var (
	// ErrNoNumberedLines is returned when an enhancer reply has no "N. text"
	// lines.
	ErrNoNumberedLines = errors.New("no numbered lines in response")

	// ErrWordingChanged is returned when an enhancer reply dropped or altered
	// a stage text, dropped a section or approved instruction, or added a
	// bullet of its own.
	ErrWordingChanged = errors.New("response changed the user's wording")
)

// Enhancer tidies a deterministic prompt. Implementations must preserve the
// user's wording; [Assembler] discards any reply that does not.
type Enhancer interface {
	Enhance(ctx context.Context, snap idea.Snapshot, rendered string) (string, error)
}

const enhanceSystem = `You tidy prompts that people wrote for an AI app builder.
Preserve the user's own wording exactly. Never invent features, audiences or details.
You may only fix ordering, spacing and obvious typos outside quoted text.`

// GeminiEnhancer implements [Enhancer] with a [gemini.Generator].
//
// The rendered prompt is sent as numbered lines and the reply is expected in
// the same "N. text" form. A bare "N." stands for a blank line.
type GeminiEnhancer struct {
	gen         gemini.Generator
	temperature float32
	closing     string
}

// NewGeminiEnhancer creates a [GeminiEnhancer]. closing is re-appended when
// the reply lost the closing directive.
func NewGeminiEnhancer(gen gemini.Generator, temperature float32, closing string) *GeminiEnhancer {
	if closing == "" {
		closing = DefaultClosingDirective
	}
	return &GeminiEnhancer{gen: gen, temperature: temperature, closing: closing}
}

// Enhance sends the rendered prompt and returns the tidied version.
func (e *GeminiEnhancer) Enhance(ctx context.Context, snap idea.Snapshot, rendered string) (string, error) {
	resp, err := e.gen.Generate(ctx, gemini.Request{
		System:          enhanceSystem,
		Prompt:          enhancePrompt(rendered),
		Temperature:     e.temperature,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return "", err
	}

	text, err := ParseNumbered(resp)
	if err != nil {
		return "", err
	}

	if err := checkWording(snap, rendered, text); err != nil {
		return "", err
	}

	if !strings.HasSuffix(strings.TrimSpace(text), e.closing) {
		text = strings.TrimRight(text, "\n") + "\n\n" + e.closing
	}
	return text, nil
}

// checkWording reports whether text keeps every stage text, section heading
// and approved instruction of the snapshot and carries no bullet that the
// rendered prompt did not have.
func checkWording(snap idea.Snapshot, rendered, text string) error {
	for _, st := range snap.Stages {
		if !strings.Contains(text, st.Text) {
			return fmt.Errorf("%w: stage %q", ErrWordingChanged, st.ID)
		}
	}

	for _, sec := range snap.Sections {
		if !strings.Contains(text, heading(sec.Category)+":") {
			return fmt.Errorf("%w: section %q dropped", ErrWordingChanged, sec.Category.ID)
		}
		for _, approved := range sec.Approved {
			if !strings.Contains(text, approved) {
				return fmt.Errorf("%w: instruction %q dropped", ErrWordingChanged, approved)
			}
		}
	}

	known := bullets(rendered)
	for b := range bullets(text) {
		if !known[b] {
			return fmt.Errorf("%w: bullet %q was not in the prompt", ErrWordingChanged, b)
		}
	}
	return nil
}

// bullets returns the set of "- text" lines of s.
func bullets(s string) map[string]bool {
	out := make(map[string]bool)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			out[strings.TrimSpace(rest)] = true
		}
	}
	return out
}

func enhancePrompt(rendered string) string {
	var b strings.Builder
	b.WriteString("Tidy the following prompt. Answer with numbered lines only, one line of output per line of prompt, ")
	b.WriteString("in the form \"N. text\". Use \"N.\" alone for a blank line. Keep every quoted text exactly as written.\n\n")
	for i, line := range strings.Split(rendered, "\n") {
		if line == "" {
			fmt.Fprintf(&b, "%d.\n", i+1)
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	return b.String()
}

var numbered = regexp.MustCompile(`^\s*\d+\.(?:\s(.*))?$`)

// ParseNumbered joins the "N. text" lines of a reply, ignoring everything
// else. Leading and trailing blank lines are dropped.
func ParseNumbered(response string) (string, error) {
	var lines []string
	found := false
	for _, raw := range strings.Split(strings.ReplaceAll(response, "\r\n", "\n"), "\n") {
		m := numbered.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		text := strings.TrimRight(m[1], " \t")
		if text != "" {
			found = true
		}
		lines = append(lines, text)
	}
	if !found {
		return "", ErrNoNumberedLines
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n"), nil
}

// MockEnhancer implements [Enhancer] for testing.
type MockEnhancer struct {
	Text  string
	Err   error
	Calls int
}

// Enhance returns the configured text or error.
func (m *MockEnhancer) Enhance(ctx context.Context, snap idea.Snapshot, rendered string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
