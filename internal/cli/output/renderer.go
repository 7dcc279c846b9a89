// Package output provides the rendering layer for CLI commands. A
// Renderer targets one of four modes: styled text for interactive
// terminals, markdown for piped output, json for scripting, or auto to
// pick between text and markdown based on whether stdout is a TTY.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in a chosen mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles Styles
}

// NewRenderer creates a renderer. An empty mode behaves as auto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: DefaultStyles(),
	}
}

// EffectiveMode resolves auto to text or markdown. Text is used when the
// output is an interactive terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the destination writer, for encoders that write
// directly (e.g. json).
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// Styles returns the lipgloss style set for text mode.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

// Println writes a line of output.
func (r *Renderer) Println(args ...interface{}) {
	fmt.Fprintln(r.out, args...)
}

// Header writes a heading appropriate for the effective mode.
func (r *Renderer) Header(level int, text string) {
	switch r.EffectiveMode() {
	case ModeMarkdown:
		r.Println(FormatHeader(level, text))
	default:
		style := r.styles.Header1
		if level > 1 {
			style = r.styles.Header2
		}
		r.Println(style.Render(text))
	}
}

// Errorf writes a formatted message to the error stream.
func (r *Renderer) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(r.errOut, format, args...)
}
