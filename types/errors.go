package types

import (
	"github.com/spacemonkeygo/errors"
)

// Error classes for the archive/parser/sink pipeline. Each class carries
// optional data (entry name, group name) attached with errors.SetData and
// read back with ErrorEntry/ErrorGroup, mirroring how the DAT parser
// attaches a line number and file path to its own parse errors.
var (
	NotFoundError       = errors.NewClass("archive not found")
	InvalidInputError   = errors.NewClass("invalid archive input")
	UnsupportedError    = errors.NewClass("unsupported archive format")
	CorruptError        = errors.NewClass("corrupt archive entry")
	IOError             = errors.NewClass("archive entry read failure")
	EmptyError          = errors.NewClass("no records parsed")
	SinkUnavailableError = errors.NewClass("sink unavailable")

	entryErrorKey = errors.GenSym()
	groupErrorKey = errors.GenSym()
)

// ErrorEntry returns the archive entry name attached to err, if any.
func ErrorEntry(err error) string {
	v, ok := errors.GetData(err, entryErrorKey).(string)
	if !ok {
		return ""
	}
	return v
}

// ErrorGroup returns the log group name attached to err, if any.
func ErrorGroup(err error) string {
	v, ok := errors.GetData(err, groupErrorKey).(string)
	if !ok {
		return ""
	}
	return v
}

// WithEntry attaches an archive entry name to an error raised via one of
// the classes above.
func WithEntry(entry string) errors.ErrorOption {
	return errors.SetData(entryErrorKey, entry)
}

// WithGroup attaches a log group name to an error raised via one of the
// classes above.
func WithGroup(group string) errors.ErrorOption {
	return errors.SetData(groupErrorKey, group)
}
