package dailyrotate

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Clock is a source of time for dailyrotate.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time
}

// DefaultClock is the default clock used by dailyrotate in operations that
// require time. This clock uses the system clock for all operations.
var DefaultClock = systemClock{}

// systemClock implements default Clock that uses system time.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// formatSuffix renders t with the date pattern. A nil pattern means time
// based rotation is disabled, and the suffix is always empty.
func formatSuffix(pattern *strftime.Strftime, t time.Time) string {
	if pattern == nil {
		return ""
	}
	return pattern.FormatString(t)
}

// backupName returns the numbered backup path "<base>.<index>".
func backupName(base string, index int) string {
	return fmt.Sprintf("%s.%d", base, index)
}

// tracef formats according to a format specifier and writes to w
// with trace info and a newline appended.
func tracef(w io.Writer, format string, args ...any) (int, error) {
	pc := make([]uintptr, 15)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])
	frame, _ := frames.Next()

	traceArgs := []any{
		filepath.Base(frame.File),
		frame.Line,
		filepath.Base(frame.Function),
	}
	args = append(traceArgs, args...)
	return fmt.Fprintf(w, "%s:%d %s "+format+"\n", args...)
}
