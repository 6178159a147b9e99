// Package logger contains a multi-destination logger.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Level is a log level.
type Level int

// Log levels.
const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

func (l Level) label() string {
	switch l {
	case Debug:
		return "DEB"
	case Info:
		return "INF"
	case Warn:
		return "WAR"
	default:
		return "ERR"
	}
}

// Destination is a log destination.
type Destination int

const (
	// DestinationStdout writes logs to the standard output.
	DestinationStdout Destination = iota

	// DestinationFile writes logs to a file.
	DestinationFile
)

type destination interface {
	log(t time.Time, level Level, format string, args ...any)
	close()
}

// Logger is a log handler.
type Logger struct {
	// Minimum level of messages that are written. It defaults to Info.
	Level Level

	// Destinations of log messages.
	Destinations []Destination

	// Path of the log file, when DestinationFile is in use.
	File string

	// Write entries as JSON objects instead of plain lines.
	Structured bool

	// private, used in tests
	timeNow func() time.Time
	stdout  io.Writer

	mutex        sync.Mutex
	destinations []destination
}

// Initialize initializes a Logger.
func (lh *Logger) Initialize() error {
	if lh.Level == 0 {
		lh.Level = Info
	}
	if lh.timeNow == nil {
		lh.timeNow = time.Now
	}

	for _, dest := range lh.Destinations {
		switch dest {
		case DestinationStdout:
			lh.destinations = append(lh.destinations, newDestinationStdout(lh.stdout, lh.Structured))

		case DestinationFile:
			d, err := newDestinationFile(lh.File, lh.Structured)
			if err != nil {
				lh.Close()
				return err
			}
			lh.destinations = append(lh.destinations, d)
		}
	}

	return nil
}

// Close closes a Logger.
func (lh *Logger) Close() {
	for _, dest := range lh.destinations {
		dest.close()
	}
	lh.destinations = nil
}

// Log implements Writer.
func (lh *Logger) Log(level Level, format string, args ...any) {
	if level < lh.Level {
		return
	}

	lh.mutex.Lock()
	defer lh.mutex.Unlock()

	t := lh.timeNow()
	for _, dest := range lh.destinations {
		dest.log(t, level, format, args...)
	}
}

func writePlainEntry(w io.Writer, t time.Time, level Level, format string, args []any) {
	fmt.Fprintf(w, "%s %s %s\n",
		t.Format("2006/01/02 15:04:05"),
		level.label(),
		fmt.Sprintf(format, args...))
}

func writeStructuredEntry(w io.Writer, t time.Time, level Level, format string, args []any) {
	msg, _ := json.Marshal(fmt.Sprintf(format, args...))
	fmt.Fprintf(w, `{"timestamp":%q,"level":%q,"message":%s}`+"\n",
		t.Format(time.RFC3339Nano),
		level.label(),
		msg)
}
