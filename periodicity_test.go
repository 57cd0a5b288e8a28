package dailyrotate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DetectGranularity(t *testing.T) {
	tests := []struct {
		pattern  string
		firstDay time.Weekday
		want     Granularity
	}{
		{".%Y-%m-%d", time.Sunday, Daily},
		{"%F", time.Sunday, Daily},
		{"%y%m%d", time.Sunday, Daily},
		{"-%j", time.Sunday, Daily},
		{".%Y-%m-%d-%H", time.Sunday, Hourly},
		{"%Y%m%d%H", time.Sunday, Hourly},
		{"%H:%M", time.Sunday, Minutely},
		{".%Y-%m-%d-%H-%M", time.Sunday, Minutely},
		{"%Y-%m-%d %p", time.Sunday, HalfDaily},
		{"%Y-%U", time.Sunday, Weekly},
		{"%Y-%W", time.Monday, Weekly},
		{"%Y-%m", time.Sunday, Monthly},
		{".%b", time.Sunday, Monthly},
		{".log", time.Sunday, InvalidGranularity},
		{"%S", time.Sunday, InvalidGranularity},
		{"%Y", time.Sunday, InvalidGranularity},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := DetectGranularity(tt.pattern, Calendar{FirstDayOfWeek: tt.firstDay})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "DetectGranularity(%q) = %s, want %s", tt.pattern, got, tt.want)
		})
	}
}

func Test_DetectGranularityIgnoresLocation(t *testing.T) {
	// Detection must not depend on the zone boundaries are computed in.
	far := time.FixedZone("UTC+14", 14*3600)
	got, err := DetectGranularity(".%Y-%m-%d", Calendar{Location: far})
	require.NoError(t, err)
	assert.Equal(t, Daily, got)
}

func Test_DetectGranularityInvalidPattern(t *testing.T) {
	for _, pattern := range []string{".%Q", "%Y-%"} {
		g, err := DetectGranularity(pattern, Calendar{})
		assert.Error(t, err, pattern)
		assert.Equal(t, InvalidGranularity, g)
	}
}

func Test_GranularityString(t *testing.T) {
	assert.Equal(t, "minutely", Minutely.String())
	assert.Equal(t, "hourly", Hourly.String())
	assert.Equal(t, "half-daily", HalfDaily.String())
	assert.Equal(t, "daily", Daily.String())
	assert.Equal(t, "weekly", Weekly.String())
	assert.Equal(t, "monthly", Monthly.String())
	assert.Equal(t, "invalid", InvalidGranularity.String())
	assert.Equal(t, "invalid", Granularity(42).String())
}
