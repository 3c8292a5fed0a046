package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty is zero", input: "", want: time.Time{}},
		{name: "iso", input: "2026-08-15", want: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
		{name: "slashes", input: "2026/08/15", want: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
		{name: "us style", input: "08/15/2026", want: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", input: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestResolvePeriod(t *testing.T) {
	t.Run("month shorthand", func(t *testing.T) {
		from, to, err := resolvePeriod("", "", "2026-07")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("month conflicts with range flags", func(t *testing.T) {
		_, _, err := resolvePeriod("2026-01-01", "", "2026-07")
		assert.Error(t, err)
	})

	t.Run("explicit range", func(t *testing.T) {
		from, to, err := resolvePeriod("2026-01-01", "2026-07-01", "")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("open ended", func(t *testing.T) {
		from, to, err := resolvePeriod("2026-01-01", "", "")
		require.NoError(t, err)
		assert.False(t, from.IsZero())
		assert.True(t, to.IsZero())
	})

	t.Run("default is current month", func(t *testing.T) {
		from, to, err := resolvePeriod("", "", "")
		require.NoError(t, err)
		now := time.Now()
		assert.Equal(t, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), from)
		assert.Equal(t, from.AddDate(0, 1, 0), to)
	})

	t.Run("bad month", func(t *testing.T) {
		_, _, err := resolvePeriod("", "", "July 2026")
		assert.Error(t, err)
	})
}
