package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gounknown/dailyrotate"
	"github.com/gounknown/dailyrotate/internal/config"
)

var errNoFile = errors.New("no log file given, use --file or the config file")

func pipeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.File == "" {
		return errNoFile
	}

	errorLog := cmd.String("error-log")
	if errorLog != "" && filepath.Clean(errorLog) == filepath.Clean(cfg.File) {
		return fmt.Errorf("error log %q must differ from the rotated file", errorLog)
	}
	logger, closeLogger := newZapLogger(errorLog)
	defer closeLogger()

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, dailyrotate.WithErrorSink(zapSink{logger: logger}))

	l, err := dailyrotate.New(cfg.File, opts...)
	if err != nil {
		return err
	}
	logger.Info("started",
		zap.String("file", cfg.File),
		zap.Stringer("granularity", l.Granularity()),
		zap.String("max_file_size", cfg.MaxFileSize),
		zap.Int("keep_period", cfg.KeepPeriod))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	handleRotateSignal(ctx, l, logger)

	copyErr := copyLines(l, os.Stdin)
	closeErr := l.Close()
	m := l.Metrics()
	logger.Info("stopped",
		zap.Uint64("time_rotations", m.TimeRotations),
		zap.Uint64("size_rotations", m.SizeRotations),
		zap.Uint64("failures", m.Failures),
		zap.Uint64("pruned", m.Pruned))
	return errors.Join(copyErr, closeErr)
}

// loadConfig reads --config, if any, and applies the flags set on top.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if cmd.IsSet("file") {
		cfg.File = cmd.String("file")
	}
	if cmd.IsSet("date-pattern") {
		cfg.DatePattern = cmd.String("date-pattern")
	}
	if cmd.IsSet("max-size") {
		cfg.MaxFileSize = cmd.String("max-size")
	}
	if cmd.IsSet("keep-period") {
		cfg.KeepPeriod = int(cmd.Int("keep-period"))
	}
	if cmd.IsSet("append") {
		cfg.Append = cmd.Bool("append")
	}
	if cmd.IsSet("first-day-of-week") {
		cfg.FirstDayOfWeek = cmd.String("first-day-of-week")
	}
	if cmd.IsSet("location") {
		cfg.Location = cmd.String("location")
	}
	return cfg, nil
}

// copyLines writes r to w one line per Write, so a rotation never splits
// a line across two files.
func copyLines(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := w.Write(line); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// newZapLogger logs JSON to stderr, or to a size capped file at path.
func newZapLogger(path string) (*zap.Logger, func()) {
	var ws zapcore.WriteSyncer
	closer := func() {}
	if path == "" {
		ws = zapcore.Lock(os.Stderr)
	} else {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		ws = zapcore.AddSync(lj)
		closer = func() { _ = lj.Close() }
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		ws,
		zap.InfoLevel,
	)
	logger := zap.New(core)
	return logger, func() {
		_ = logger.Sync()
		closer()
	}
}

// zapSink reports rotation failures as zap errors.
type zapSink struct {
	logger *zap.Logger
}

func (s zapSink) Report(msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
}
