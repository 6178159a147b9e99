package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gookit/color"
	"golang.org/x/term"
)

func levelColor(level Level) color.Color {
	switch level {
	case Debug:
		return color.Gray
	case Info:
		return color.Green
	case Warn:
		return color.Yellow
	default:
		return color.Red
	}
}

type destinationStdout struct {
	w          io.Writer
	structured bool
	useColor   bool
}

func newDestinationStdout(w io.Writer, structured bool) destination {
	useColor := false
	if w == nil {
		w = os.Stdout
		useColor = term.IsTerminal(int(os.Stdout.Fd()))
	}

	return &destinationStdout{
		w:          w,
		structured: structured,
		useColor:   useColor,
	}
}

func (d *destinationStdout) log(t time.Time, level Level, format string, args ...any) {
	switch {
	case d.structured:
		writeStructuredEntry(d.w, t, level, format, args)

	case d.useColor:
		fmt.Fprintf(d.w, "%s %s %s\n",
			color.RenderString(color.Gray.Code(), t.Format("2006/01/02 15:04:05")),
			color.RenderString(levelColor(level).Code(), level.label()),
			fmt.Sprintf(format, args...))

	default:
		writePlainEntry(d.w, t, level, format, args)
	}
}

func (d *destinationStdout) close() {
}
