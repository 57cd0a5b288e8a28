package dailyrotate

import (
	"io/fs"
	"time"
)

// DefaultDatePattern rotates at midnight and names backups like
// "app.log.2024-05-01.1".
const DefaultDatePattern = ".%Y-%m-%d"

// Options is supplied as the optional arguments for New.
type Options struct {
	clock       Clock          // used to determine the current time
	location    *time.Location // zone period boundaries are aligned to
	datePattern string         // strftime suffix appended to backups
	maxSize     int64          // max size of log file before rotation
	keepPeriod  int            // periods of backups to retain
	append      bool           // append to an existing file on start
	firstDay    time.Weekday   // start of Weekly periods
	errorSink   ErrorSink      // receives rotation failures
	fs          FileSystem     // file operations
	fileMode    fs.FileMode    // mode for newly created files
}

// Option is the functional option type.
type Option func(*Options)

func newDefaultOptions() *Options {
	return &Options{
		clock:       DefaultClock,
		location:    time.Local,
		datePattern: DefaultDatePattern,
		maxSize:     10 * 1024 * 1024, // 10M
		keepPeriod:  0,                // retain all old log files
		append:      true,
		firstDay:    time.Sunday,
		errorSink:   stderrSink{},
		fs:          OSFileSystem{},
		fileMode:    0644,
	}
}

func parseOptions(setters ...Option) *Options {
	// default Options
	opts := newDefaultOptions()
	for _, setter := range setters {
		if setter != nil {
			setter(opts)
		}
	}
	return opts
}

// WithClock specifies the clock used by Logger to determine the current
// time. It defaults to the system clock with time.Now.
func WithClock(clock Clock) Option {
	return func(opts *Options) {
		opts.clock = clock
	}
}

// WithLocation sets the time zone that period boundaries and backup
// names are computed in.
//
// Default: time.Local
func WithLocation(loc *time.Location) Option {
	return func(opts *Options) {
		opts.location = loc
	}
}

// WithDatePattern sets the strftime pattern appended to the file name of
// backups. The finest time-varying field of the pattern decides how often
// the file is rotated, e.g. ".%Y-%m-%d-%H" rotates hourly. An empty pattern
// disables time based rotation.
//
// Default: ".%Y-%m-%d"
func WithDatePattern(pattern string) Option {
	return func(opts *Options) {
		opts.datePattern = pattern
	}
}

// WithMaxSize sets the maximum size in bytes of the log file before it
// gets rotated. If MaxSize <= 0, that means not rotate log file based
// on size. See ParseSize for "10MB" style values.
//
// Default: 10 MiB
func WithMaxSize(n int64) Option {
	return func(opts *Options) {
		opts.maxSize = n
	}
}

// WithKeepPeriod sets how many periods of backups are kept. Backups of
// the period keepPeriod+2 periods before the next boundary are deleted on
// every time based rotation. If keepPeriod <= 0, nothing is deleted.
//
// Default: 0
func WithKeepPeriod(n int) Option {
	return func(opts *Options) {
		opts.keepPeriod = n
	}
}

// WithAppend sets whether an existing log file is appended to when the
// Logger starts. Otherwise it is truncated.
//
// Default: true
func WithAppend(enable bool) Option {
	return func(opts *Options) {
		opts.append = enable
	}
}

// WithFirstDayOfWeek sets the day Weekly periods start on.
//
// Default: time.Sunday
func WithFirstDayOfWeek(day time.Weekday) Option {
	return func(opts *Options) {
		opts.firstDay = day
	}
}

// WithErrorSink sets where rotation failures are reported. The sink must
// not write to the Logger it is attached to.
//
// Default: a sink that prints to os.Stderr
func WithErrorSink(sink ErrorSink) Option {
	return func(opts *Options) {
		opts.errorSink = sink
	}
}

// WithFileSystem replaces the file system used for all file operations.
//
// Default: OSFileSystem{}
func WithFileSystem(fsys FileSystem) Option {
	return func(opts *Options) {
		opts.fs = fsys
	}
}

// WithFileMode sets the permission bits of newly created log files.
//
// Default: 0644
func WithFileMode(mode fs.FileMode) Option {
	return func(opts *Options) {
		opts.fileMode = mode
	}
}
