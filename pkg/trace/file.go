package trace

import (
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotatingFile is a Writer on a size-rotated log file.
type RotatingFile struct {
	*Writer
	logger *lumberjack.Logger
}

// NewRotatingFile creates a RotatingFile. maxSizeMB and maxBackups of 0
// use the lumberjack defaults.
func NewRotatingFile(path string, maxSizeMB, maxBackups int) *RotatingFile {
	logger := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	return &RotatingFile{Writer: NewWriter(logger), logger: logger}
}

// Close implements io.Closer.
func (f *RotatingFile) Close() error {
	return f.logger.Close()
}
