// file: internals/features/school/attendance/service/window_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

func TestBuildWindow_Basic(t *testing.T) {
	// Senin 2 Maret 2026, jadwal 14:00–15:00
	refDate := time.Date(2026, 3, 2, 0, 0, 0, 0, wib)

	win, err := BuildWindow("14:00", "15:00", refDate, wib)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 2, 13, 20, 0, 0, wib), win.WindowStart)
	assert.Equal(t, time.Date(2026, 3, 2, 16, 0, 0, 0, wib), win.WindowEnd)
	assert.Equal(t, time.Date(2026, 3, 2, 14, 15, 0, 0, wib), win.LateThreshold)
}

func TestWindow_ContainsBoundariesInclusive(t *testing.T) {
	refDate := time.Date(2026, 3, 2, 0, 0, 0, 0, wib)
	win, err := BuildWindow("14:00", "15:00", refDate, wib)
	require.NoError(t, err)

	assert.True(t, win.Contains(time.Date(2026, 3, 2, 13, 20, 0, 0, wib)))
	assert.True(t, win.Contains(time.Date(2026, 3, 2, 16, 0, 0, 0, wib)))
	assert.False(t, win.Contains(time.Date(2026, 3, 2, 13, 19, 59, 0, wib)))
	assert.False(t, win.Contains(time.Date(2026, 3, 2, 16, 0, 1, 0, wib)))
}

func TestWindow_LateThresholdExclusive(t *testing.T) {
	refDate := time.Date(2026, 3, 2, 0, 0, 0, 0, wib)
	win, err := BuildWindow("14:00", "15:00", refDate, wib)
	require.NoError(t, err)

	// tepat di ambang = masih on-time
	assert.False(t, win.IsLate(time.Date(2026, 3, 2, 14, 15, 0, 0, wib)))
	assert.True(t, win.IsLate(time.Date(2026, 3, 2, 14, 15, 1, 0, wib)))
}

func TestBuildWindow_MidnightRollover(t *testing.T) {
	refDate := time.Date(2026, 3, 2, 0, 0, 0, 0, wib)

	// start 00:10 → window buka 23:30 hari sebelumnya
	win, err := BuildWindow("00:10", "01:00", refDate, wib)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 23, 30, 0, 0, wib), win.WindowStart)

	// end 23:30 → window tutup 00:30 hari berikutnya
	win, err = BuildWindow("22:00", "23:30", refDate, wib)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 30, 0, 0, wib), win.WindowEnd)
}

func TestParseClockMinutes(t *testing.T) {
	m, err := ParseClockMinutes("14:05")
	require.NoError(t, err)
	assert.Equal(t, 14*60+5, m)

	// presisi detik dibuang
	m, err = ParseClockMinutes("14:05:39")
	require.NoError(t, err)
	assert.Equal(t, 14*60+5, m)

	for _, bad := range []string{"25:00", "14:60", "aa:bb", "14", "", "14:05:39:00"} {
		_, err := ParseClockMinutes(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDateOnly_NormalizesToLocalCalendarDay(t *testing.T) {
	// 18:30 UTC = 01:30 WIB hari berikutnya
	utcEvening := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	got := DateOnly(utcEvening, wib)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)

	// jam lokal biasa
	local := time.Date(2026, 3, 2, 9, 0, 0, 0, wib)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), DateOnly(local, wib))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, DaysBetween(a, b))
	assert.Equal(t, 0, DaysBetween(a, a))
}
