package dailyrotate

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrEmptyFilename is returned by New when no live file path is given.
	ErrEmptyFilename = errors.New("dailyrotate: filename is required")

	// ErrNoDatePattern is reported when the date pattern is empty. Only
	// size based rotation stays active.
	ErrNoDatePattern = errors.New("dailyrotate: no date pattern")

	// ErrConstantPattern is reported when the date pattern has no
	// time-varying field. Only size based rotation stays active.
	ErrConstantPattern = errors.New("dailyrotate: date pattern never changes")

	// ErrClosed is returned by operations on a closed Logger.
	ErrClosed = errors.New("dailyrotate: logger is closed")
)

// ConfigError describes a configuration problem found while activating a
// Logger. It disables time based rotation but never the Logger itself.
type ConfigError struct {
	Pattern string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("date pattern %q: %v", e.Pattern, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RotationError records a file-system operation that failed during
// rotation. The Logger keeps writing after any RotationError.
type RotationError struct {
	Op   string // "close", "remove", "rename" or "open"
	Path string
	Err  error
}

func (e *RotationError) Error() string {
	return fmt.Sprintf("rotate: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RotationError) Unwrap() error { return e.Err }

// ErrorSink receives failures the Logger does not return to its caller.
// Implementations must not write to the Logger that reports to them.
type ErrorSink interface {
	Report(msg string, err error)
}

// ErrorSinkFunc adapts a function to ErrorSink.
type ErrorSinkFunc func(msg string, err error)

func (f ErrorSinkFunc) Report(msg string, err error) { f(msg, err) }

// stderrSink is the default ErrorSink.
type stderrSink struct{}

func (stderrSink) Report(msg string, err error) {
	if err != nil {
		tracef(os.Stderr, "%s: %v", msg, err)
		return
	}
	tracef(os.Stderr, "%s", msg)
}
