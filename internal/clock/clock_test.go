package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want int
	}{
		{"same day", "2025-03-10", "2025-03-10", 0},
		{"adjacent", "2025-03-10", "2025-03-11", 1},
		{"week gap", "2025-03-10", "2025-03-17", 7},
		{"month boundary", "2025-01-31", "2025-02-01", 1},
		{"year boundary", "2024-12-31", "2025-01-01", 1},
		{"reversed is negative", "2025-03-11", "2025-03-10", -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DaysBetween(tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDaysBetween_BadInput(t *testing.T) {
	_, err := DaysBetween("not-a-date", "2025-03-10")
	assert.Error(t, err)

	_, err = DaysBetween("2025-03-10", "03/10/2025")
	assert.Error(t, err)
}

func TestFixed(t *testing.T) {
	at := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	clk := Fixed{Time: at}

	assert.Equal(t, at, clk.Now())
	assert.Equal(t, "2025-06-01", clk.Today())
}
