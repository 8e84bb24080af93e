package duration_test

import (
	"testing"
	"time"

	"github.com/dagucloud/timescope/internal/cmn/duration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tests := []struct {
			input    string
			expected time.Duration
		}{
			{"90m", 90 * time.Minute},
			{"2d", 48 * time.Hour},
			{"2d12h", 60 * time.Hour},
			{"1w", 7 * 24 * time.Hour},
			{"1w1d", 8 * 24 * time.Hour},
			{"-3h", -3 * time.Hour},
			{"-1d30m", -(24*time.Hour + 30*time.Minute)},
			{"+45s", 45 * time.Second},
			{" 5m ", 5 * time.Minute},
			{"1.5h2d", 49*time.Hour + 30*time.Minute},
		}

		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				d, err := duration.Parse(tt.input)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, d)
			})
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, input := range []string{"", "  ", "abc", "5x", "1d-2h", "--1h"} {
			t.Run(input, func(t *testing.T) {
				_, err := duration.Parse(input)
				assert.Error(t, err)
			})
		}
	})

	t.Run("FractionalDays", func(t *testing.T) {
		for _, input := range []string{"1.5d", "0.5w", ".5d", "2h1.5d", "-1.5d"} {
			t.Run(input, func(t *testing.T) {
				_, err := duration.Parse(input)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "fractional")
			})
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		for _, input := range []string{"99999999999999999999d", "400000w", "9223372036854775807d", "106752d"} {
			t.Run(input, func(t *testing.T) {
				_, err := duration.Parse(input)
				assert.Error(t, err)
			})
		}
	})
}
