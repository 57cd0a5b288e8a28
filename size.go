package dailyrotate

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
)

// ParseSize parses a byte size with an optional binary suffix, such as
// "512", "64KB", "10MB" or "1GB". Suffixes are powers of 1024 and are
// case-insensitive.
func ParseSize(s string) (int64, error) {
	n, err := units.RAMInBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return n, nil
}
