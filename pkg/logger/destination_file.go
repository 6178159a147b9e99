package logger

import (
	"os"
	"time"
)

type destinationFile struct {
	structured bool
	file       *os.File
}

func newDestinationFile(filePath string, structured bool) (destination, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	return &destinationFile{
		structured: structured,
		file:       file,
	}, nil
}

func (d *destinationFile) log(t time.Time, level Level, format string, args ...any) {
	if d.structured {
		writeStructuredEntry(d.file, t, level, format, args)
	} else {
		writePlainEntry(d.file, t, level, format, args)
	}
}

func (d *destinationFile) close() {
	d.file.Close()
}
