// Package config loads dailyrotate settings from YAML or JSON files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/gounknown/dailyrotate"
)

var (
	// ErrEmptyPath is returned by Load when no path is given.
	ErrEmptyPath = errors.New("config: path is empty")

	// ErrUnsupportedFormat is returned for extensions or formats other
	// than YAML and JSON.
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrLoadFailed wraps errors reading the configuration file.
	ErrLoadFailed = errors.New("config: load failed")

	// ErrParseFailed wraps syntax and decoding errors.
	ErrParseFailed = errors.New("config: parse failed")

	// ErrInvalid wraps values that cannot be turned into options, such as
	// an unknown size suffix, weekday or time zone.
	ErrInvalid = errors.New("config: invalid value")
)

// Format is a configuration file format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Config mirrors the options of dailyrotate.New.
type Config struct {
	File           string `koanf:"file"`
	DatePattern    string `koanf:"date_pattern"`
	MaxFileSize    string `koanf:"max_file_size"` // e.g. "10MB", "0" disables
	KeepPeriod     int    `koanf:"keep_period"`
	Append         bool   `koanf:"append"`
	FirstDayOfWeek string `koanf:"first_day_of_week"`
	Location       string `koanf:"location"` // IANA name, "Local" or "UTC"
}

// Default returns the configuration used for keys a file leaves out.
func Default() Config {
	return Config{
		DatePattern:    dailyrotate.DefaultDatePattern,
		MaxFileSize:    "10MB",
		Append:         true,
		FirstDayOfWeek: "sunday",
		Location:       "Local",
	}
}

// Load reads the file at path. The format is chosen by extension.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return Parse(data, format)
}

// Parse decodes data on top of Default. Empty data yields Default.
func Parse(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return cfg, nil
}

// Options converts c into options for dailyrotate.New.
func (c Config) Options() ([]dailyrotate.Option, error) {
	var maxSize int64
	if s := strings.TrimSpace(c.MaxFileSize); s != "" {
		n, err := dailyrotate.ParseSize(s)
		if err != nil {
			return nil, fmt.Errorf("%w: max_file_size: %w", ErrInvalid, err)
		}
		maxSize = n
	}
	day, err := ParseWeekday(c.FirstDayOfWeek)
	if err != nil {
		return nil, err
	}
	loc, err := loadLocation(c.Location)
	if err != nil {
		return nil, err
	}
	return []dailyrotate.Option{
		dailyrotate.WithDatePattern(c.DatePattern),
		dailyrotate.WithMaxSize(maxSize),
		dailyrotate.WithKeepPeriod(c.KeepPeriod),
		dailyrotate.WithAppend(c.Append),
		dailyrotate.WithFirstDayOfWeek(day),
		dailyrotate.WithLocation(loc),
	}, nil
}

// ParseWeekday accepts full or three letter English day names in any case.
// An empty string means Sunday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: first_day_of_week %q", ErrInvalid, s)
}

func loadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: location: %w", ErrInvalid, err)
	}
	return loc, nil
}

func detectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}
