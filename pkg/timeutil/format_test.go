package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local).UnixNano()

	assert.Equal(t, "2024-03-09 14:05:07", FormatTimestamp(ts, ""))
	assert.Equal(t, "09/03/2024", FormatTimestamp(ts, "%d/%m/%Y"))
	assert.Equal(t, "14:05", FormatTimestamp(ts, "%H:%M"))
}

func TestValidateLayout(t *testing.T) {
	assert.NoError(t, ValidateLayout("%Y-%m-%d"))
	assert.Error(t, ValidateLayout("%Q"))
}

func TestFormatInterval(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{time.Second, "1s"},
		{1500 * time.Millisecond, "1.5s"},
		{3 * time.Second, "3s"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatInterval(tc.in))
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", RelativeTime(now.UnixNano()))
	assert.Equal(t, "5m ago", RelativeTime(now.Add(-5*time.Minute-time.Second).UnixNano()))
	assert.Equal(t, "2d ago", RelativeTime(now.Add(-49*time.Hour).UnixNano()))
}
