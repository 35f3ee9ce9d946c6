package devicecal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familycore/pkg/domain"
)

func TestWindowWithTimeRange(t *testing.T) {
	win, ok := Window(domain.CalendarEvent{Date: "2026-09-01", Time: "10:00-10:45"}, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), win.Start)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 45, 0, 0, time.UTC), win.End)
}

func TestWindowSingleTimeGetsDefaultDuration(t *testing.T) {
	win, ok := Window(domain.CalendarEvent{Date: "2026-09-01", Time: "15:30"}, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC), win.Start)
	assert.Equal(t, time.Hour, win.End.Sub(win.Start))
}

func TestWindowEmptyTimeDefaultsToMorningSlot(t *testing.T) {
	win, ok := Window(domain.CalendarEvent{Date: "2026-09-01", Time: ""}, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), win.Start)
	assert.Equal(t, time.Hour, win.End.Sub(win.Start))
}

func TestWindowMalformedTimeFallsBackWithoutError(t *testing.T) {
	for _, raw := range []string{"afternoonish", "25:99", "10h30", "sometime-later"} {
		win, ok := Window(domain.CalendarEvent{Date: "2026-09-01", Time: raw}, time.UTC)
		require.True(t, ok, "time %q", raw)
		assert.Equal(t, 9, win.Start.Hour(), "time %q", raw)
	}
}

func TestWindowInvertedRangeGetsDefaultDuration(t *testing.T) {
	win, ok := Window(domain.CalendarEvent{Date: "2026-09-01", Time: "18:00-17:00"}, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC), win.Start)
	assert.Equal(t, time.Hour, win.End.Sub(win.Start))
}

func TestWindowUnparseableDateNotExportable(t *testing.T) {
	for _, date := range []string{"", "next tuesday", "2026/09/01"} {
		_, ok := Window(domain.CalendarEvent{Date: date, Time: "10:00"}, time.UTC)
		assert.False(t, ok, "date %q", date)
	}
}

func TestWindowNilLocationUsesLocal(t *testing.T) {
	win, ok := Window(domain.CalendarEvent{Date: "2026-09-01", Time: "08:00"}, nil)
	require.True(t, ok)
	assert.Equal(t, time.Local, win.Start.Location())
}
