// Package dailyrotate rotates a continuously appended log file when a
// calendar period ends or when the file grows past a size threshold.
//
// The live file always keeps its configured name. Rotated content is moved
// to numbered backups named after the period it was written in, for the
// default ".%Y-%m-%d" pattern e.g. "app.log.2024-05-01.1",
// "app.log.2024-05-01.2". Old periods can be pruned with WithKeepPeriod.
package dailyrotate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lestrrat-go/strftime"
)

// ensure we always implement io.WriteCloser
var _ io.WriteCloser = (*Logger)(nil)

// Logger is an io.WriteCloser that writes to a single live file and rotates
// it as you write to it. It is safe for concurrent use; all writes and
// rotations are serialized.
type Logger struct {
	// Read-only fields after *New* method inited.
	opts        *Options
	filename    string
	pattern     *strftime.Strftime // nil if time based rotation is off
	granularity Granularity
	calendar    Calendar
	interval    time.Duration // length of one period, for retention

	mu            sync.Mutex      // guards following
	file          *countingWriter // nil if the last reopen failed
	scheduledName string          // backup base name of the current period
	nextCheck     int64           // Unix nanoseconds of the next boundary
	nextRollover  int64           // byte count of the next size rotation
	backupIndex   int             // next numeric suffix to try
	closed        bool

	metrics atomicMetrics
}

// New opens filename for writing and returns a Logger rotating it
// according to options.
//
// The rotation period is detected once from the date pattern and can be
// read back with Granularity. A date pattern that is empty or never changes
// is reported to the ErrorSink as a *ConfigError and leaves only size based
// rotation active. An unparsable pattern or a file that cannot be opened
// makes New fail.
func New(filename string, options ...Option) (*Logger, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	opts := parseOptions(options...)
	if opts.clock == nil {
		opts.clock = DefaultClock
	}
	if opts.location == nil {
		opts.location = time.Local
	}
	if opts.errorSink == nil {
		opts.errorSink = stderrSink{}
	}
	if opts.fs == nil {
		opts.fs = OSFileSystem{}
	}

	l := &Logger{
		opts:     opts,
		filename: filepath.Clean(filename),
		calendar: Calendar{
			Location:       opts.location,
			FirstDayOfWeek: opts.firstDay,
		},
		backupIndex: 1,
	}

	var cfgErr error
	if opts.datePattern == "" {
		cfgErr = ErrNoDatePattern
	} else {
		p, err := strftime.New(opts.datePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid strftime pattern: %w", err)
		}
		l.granularity = detectGranularity(p, opts.firstDay)
		if l.granularity == InvalidGranularity {
			cfgErr = ErrConstantPattern
		} else {
			l.pattern = p
		}
	}

	existed := exists(opts.fs, l.filename)
	if err := l.openFile(opts.append); err != nil {
		return nil, fmt.Errorf("can't open logfile: %w", err)
	}

	if cfgErr != nil {
		l.scheduledName = l.filename
		l.report("time based rotation disabled",
			&ConfigError{Pattern: opts.datePattern, Err: cfgErr})
		return l, nil
	}

	now := l.now()
	// A file we appended to may have been written in an earlier period,
	// e.g. before a restart. Name its backup after that period.
	seed := now
	if existed && opts.append {
		if info, err := opts.fs.Stat(l.filename); err == nil {
			seed = info.ModTime().In(opts.location)
		}
	}
	l.scheduledName = l.filename + formatSuffix(l.pattern, seed)

	next := l.calendar.NextBoundary(now, l.granularity)
	l.interval = l.calendar.NextBoundary(next, l.granularity).Sub(next)
	// due immediately, so the first Write evaluates the time policy
	l.nextCheck = now.UnixNano() - 1

	return l, nil
}

// Write implements io.Writer. Before writing it rotates the file if a
// period boundary has passed; after writing it rotates the file if it has
// reached MaxSize. Rotation failures are reported to the ErrorSink and
// never returned: the Logger keeps writing to whichever file is open.
//
// Write returns a non-nil error when n != len(b), or when no file could
// be opened at all.
func (l *Logger) Write(b []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, ErrClosed
	}

	// Factor 1: period boundary
	if l.pattern != nil {
		now := l.now()
		if now.UnixNano() >= l.nextCheck {
			// Advance first, so a persistent failure is retried at the
			// next boundary instead of on every write.
			next := l.calendar.NextBoundary(now, l.granularity)
			l.nextCheck = next.UnixNano()
			if err := l.rollOverTime(now, next); err != nil {
				l.metrics.Failures.Add(1)
				l.report("time based rotation failed", err)
			}
		}
	}

	if l.file == nil {
		if err := l.openFile(true); err != nil {
			return 0, fmt.Errorf("can't reopen logfile: %w", err)
		}
		l.nextRollover = 0
	}

	n, err = l.file.Write(b)
	if err != nil {
		return n, err
	}

	// Factor 2: MaxSize
	if l.opts.maxSize > 0 {
		size := l.file.Count()
		if size >= l.opts.maxSize && size >= l.nextRollover {
			if err := l.rollOverSize(); err != nil {
				l.metrics.Failures.Add(1)
				l.report("size based rotation failed", err)
			}
		}
	}

	return n, nil
}

// rollOverTime moves the live file to a numbered backup of the period that
// just ended. next is the boundary after now.
//
// l.mu must be held by the caller.
func (l *Logger) rollOverTime(now, next time.Time) error {
	datedName := l.filename + formatSuffix(l.pattern, now)
	if datedName == l.scheduledName {
		// the formatted period has not changed yet
		return nil
	}

	var errs []error
	if l.opts.keepPeriod > 0 {
		if err := l.prune(next); err != nil {
			errs = append(errs, err)
		}
	}

	if err := l.closeFile(); err != nil {
		errs = append(errs, err)
	}

	// The exact target is overwritten, not skipped.
	target := backupName(l.scheduledName, l.backupIndex)
	if exists(l.opts.fs, target) {
		if err := l.opts.fs.Remove(target); err != nil {
			errs = append(errs, &RotationError{Op: "remove", Path: target, Err: err})
		}
	}

	renamed := true
	if err := l.opts.fs.Rename(l.filename, target); err != nil {
		renamed = false
		errs = append(errs, &RotationError{Op: "rename", Path: l.filename, Err: err})
	} else {
		l.metrics.TimeRotations.Add(1)
	}

	// If nothing moved, keep the existing content and append to it.
	if err := l.openFile(!renamed); err != nil {
		errs = append(errs, &RotationError{Op: "open", Path: l.filename, Err: err})
	} else {
		l.nextRollover = 0
		l.backupIndex = 1
	}
	l.scheduledName = datedName

	return errors.Join(errs...)
}

// rollOverSize moves the live file to the first free numbered backup of
// the current period.
//
// l.mu must be held by the caller.
func (l *Logger) rollOverSize() error {
	if l.file != nil {
		l.nextRollover = l.file.Count() + l.opts.maxSize
	}

	// Unlike time rotation, never clobber a backup of the same period.
	for exists(l.opts.fs, backupName(l.scheduledName, l.backupIndex)) {
		l.backupIndex++
	}
	target := backupName(l.scheduledName, l.backupIndex)

	var errs []error
	if err := l.closeFile(); err != nil {
		errs = append(errs, err)
	}

	if err := l.opts.fs.Rename(l.filename, target); err != nil {
		errs = append(errs, &RotationError{Op: "rename", Path: l.filename, Err: err})
		if err := l.openFile(true); err != nil {
			errs = append(errs, &RotationError{Op: "open", Path: l.filename, Err: err})
		}
		return errors.Join(errs...)
	}
	l.metrics.SizeRotations.Add(1)

	if err := l.openFile(false); err != nil {
		errs = append(errs, &RotationError{Op: "open", Path: l.filename, Err: err})
		return errors.Join(errs...)
	}
	l.backupIndex++
	l.nextRollover = 0

	return errors.Join(errs...)
}

// prune deletes the backups of the period keepPeriod+2 periods before
// next. Deletion walks "<name>.1", "<name>.2", ... and stops at the first
// missing index.
//
// l.mu must be held by the caller.
func (l *Logger) prune(next time.Time) error {
	cutoff := next.Add(-time.Duration(l.opts.keepPeriod+2) * l.interval)
	base := l.filename + formatSuffix(l.pattern, cutoff)

	var errs []error
	for i := 1; ; i++ {
		target := backupName(base, i)
		if !exists(l.opts.fs, target) {
			break
		}
		if err := l.opts.fs.Remove(target); err != nil {
			errs = append(errs, &RotationError{Op: "remove", Path: target, Err: err})
			continue
		}
		l.metrics.Pruned.Add(1)
	}
	return errors.Join(errs...)
}

// openFile opens the live file, appending to it or truncating it. The byte
// counter is seeded with the file size when appending.
//
// l.mu must be held by the caller, and any previous file must be closed.
func (l *Logger) openFile(appendMode bool) error {
	flag := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}
	f, err := l.opts.fs.OpenFile(l.filename, flag, l.opts.fileMode)
	if err != nil {
		return err
	}

	var seed int64
	if appendMode {
		if info, err := l.opts.fs.Stat(l.filename); err == nil {
			seed = info.Size()
		}
	}
	l.file = newCountingWriter(f, seed)
	return nil
}

// closeFile closes the file if it is open.
func (l *Logger) closeFile() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return &RotationError{Op: "close", Path: l.filename, Err: err}
	}
	return nil
}

// Rotate forcefully rotates the log file the way a size rotation does: the
// live file moves to the first free numbered backup of the current period
// and a new empty file is opened. This is a helper function for
// applications that want to initiate rotations outside of the normal
// rotation rules, such as in response to SIGHUP.
//
// Unlike Write, Rotate returns rotation failures to the caller.
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if l.file == nil {
		if err := l.openFile(true); err != nil {
			return &RotationError{Op: "open", Path: l.filename, Err: err}
		}
	}
	if err := l.rollOverSize(); err != nil {
		l.metrics.Failures.Add(1)
		return err
	}
	return nil
}

// Close implements io.Closer. It closes the current log file. Calling
// Write, Rotate or Close afterwards returns ErrClosed.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	l.closed = true
	if err := l.closeFile(); err != nil {
		return errors.Unwrap(err)
	}
	return nil
}

// Granularity returns the rotation period detected from the date pattern,
// or InvalidGranularity if time based rotation is off.
func (l *Logger) Granularity() Granularity {
	return l.granularity
}

// Metrics returns metrics of this Logger.
func (l *Logger) Metrics() Metrics {
	return l.metrics.toMetrics()
}

func (l *Logger) now() time.Time {
	return l.opts.clock.Now().In(l.calendar.Location)
}

// report hands err to the ErrorSink. A panicking sink must not break the
// write path.
func (l *Logger) report(msg string, err error) {
	defer func() { _ = recover() }()
	l.opts.errorSink.Report(msg, err)
}
