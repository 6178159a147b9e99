package logger

// Writer is the interface implemented by all objects that can write log entries.
type Writer interface {
	Log(level Level, format string, args ...any)
}

type discardWriter struct{}

func (discardWriter) Log(_ Level, _ string, _ ...any) {
}

// Discard is a Writer that throws away every entry.
var Discard Writer = discardWriter{}
