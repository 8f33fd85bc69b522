package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/davidmdm/ansi"
)

var (
	cyan   = ansi.MakeStyle(ansi.FgCyan).Sprint
	green  = ansi.MakeStyle(ansi.FgGreen).Sprint
	yellow = ansi.MakeStyle(ansi.FgYellow).Sprint
	red    = ansi.MakeStyle(ansi.FgRed).Sprint
)

const (
	tagInfo    = "🔍"
	tagSuccess = "✅"
	tagWarning = "⚠️ "
	tagError   = "❌"
	tagTip     = "💡"
)

// Console writes human facing status lines. Info and success lines go to Out,
// everything else to Err.
type Console struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// Std returns a Console bound to the process streams, colored when stdout is a terminal.
func Std() Console {
	return Console{
		Out:   os.Stdout,
		Err:   os.Stderr,
		Color: IsTerminal(os.Stdout),
	}
}

func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func (console Console) Info(format string, args ...any) {
	console.line(console.Out, tagInfo, cyan, format, args...)
}

func (console Console) Success(format string, args ...any) {
	console.line(console.Out, tagSuccess, green, format, args...)
}

func (console Console) Warn(format string, args ...any) {
	console.line(console.Err, tagWarning, yellow, format, args...)
}

func (console Console) Error(format string, args ...any) {
	console.line(console.Err, tagError, red, format, args...)
}

func (console Console) Tip(format string, args ...any) {
	console.line(console.Err, "\n"+tagTip, yellow, format, args...)
}

// Detail writes an indented continuation line under the previous status line.
func (console Console) Detail(format string, args ...any) {
	fmt.Fprintf(writer(console.Err), "   "+format+"\n", args...)
}

// Println writes an untagged line to Out.
func (console Console) Println(value string) {
	fmt.Fprintln(writer(console.Out), value)
}

func (console Console) line(w io.Writer, tag string, style func(...any) string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if console.Color {
		msg = style(msg)
	}
	fmt.Fprintln(writer(w), tag+" "+strings.TrimRight(msg, "\n"))
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
