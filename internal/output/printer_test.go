package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_PlainWriterHasNoEscapes(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.Title("Stages")
	p.Success("locked %s", "why")
	p.Warning("clipboard unavailable")
	p.Error("stage %q is locked", "who")
	p.Info("plain %d", 1)
	p.Muted("quiet")
	p.KeyValue("view", "stage-workspace")
	p.Bullet("one")
	p.Check(true, "done")
	p.Check(false, "open")
	p.Blank()

	out := buf.String()
	assert.NotContains(t, out, "\x1b[", "no ANSI codes for a buffer")

	want := []string{
		"Stages",
		"✓ locked why",
		"! clipboard unavailable",
		`✗ stage "who" is locked`,
		"plain 1",
		"quiet",
		"view: stage-workspace",
		"  • one",
		"  [x] done",
		"  [ ] open",
		"",
	}
	assert.Equal(t, strings.Join(want, "\n")+"\n", out)
}

func TestPrinter_Raw(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "adds newline", in: "a\nb", want: "a\nb\n"},
		{name: "keeps newline", in: "a\n", want: "a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			NewPrinterWithWriter(buf).Raw(tt.in)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_MarkdownDisabledIsRaw(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)

	p.Markdown("VISUAL VIBE:\n- Premium, clean aesthetic")

	assert.Equal(t, "VISUAL VIBE:\n- Premium, clean aesthetic\n", buf.String())
}

func TestPrinter_MarkdownEnabled(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewPrinterWithWriter(buf)
	p.SetMarkdown(MarkdownOptions{Enabled: true, Style: "notty", WordWrap: 80})

	p.Markdown("# StreakMate\n\n- Make it mobile-friendly")

	out := buf.String()
	assert.Contains(t, out, "StreakMate")
	assert.Contains(t, out, "Make it mobile-friendly")
}

func TestNewPrinter(t *testing.T) {
	p := NewPrinter()
	assert.NotNil(t, p)
	assert.NotNil(t, p.Writer())
}
