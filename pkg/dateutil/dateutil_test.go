package dateutil

import (
	"testing"
	"time"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestDayKey(t *testing.T) {
	instant := time.Date(2023, 6, 15, 1, 30, 0, 0, time.UTC)

	require.Equal(t, "2023-06-15", DayKey(instant, ""))
	require.Equal(t, "2023-06-15", DayKey(instant, "UTC"))
	require.Equal(t, "2023-06-14", DayKey(instant, "America/New_York"))
	require.Equal(t, "2023-06-15", DayKey(instant, "Asia/Tokyo"))

	// Unknown zones resolve as UTC.
	require.Equal(t, "2023-06-15", DayKey(instant, "Not/AZone"))
}

func TestDayKeySameDayInstants(t *testing.T) {
	morning := time.Date(2023, 6, 15, 0, 0, 1, 0, time.UTC)
	night := time.Date(2023, 6, 15, 23, 59, 59, 0, time.UTC)
	require.Equal(t, DayKey(morning, ""), DayKey(night, ""))
}

func TestPrevDayKey(t *testing.T) {
	prev, err := PrevDayKey("2023-06-15", "")
	require.NoError(t, err)
	require.Equal(t, "2023-06-14", prev)

	// Month and year boundaries.
	prev, err = PrevDayKey("2023-03-01", "")
	require.NoError(t, err)
	require.Equal(t, "2023-02-28", prev)

	prev, err = PrevDayKey("2024-03-01", "")
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", prev)

	prev, err = PrevDayKey("2023-01-01", "")
	require.NoError(t, err)
	require.Equal(t, "2022-12-31", prev)

	_, err = PrevDayKey("garbage", "")
	require.Error(t, err)
}

func TestPrevDayKeyAcrossDST(t *testing.T) {
	// 2023-03-12 has no 02:00 in New York and 2023-11-05 has two
	// 01:00s. Stepping must still move exactly one civil day.
	prev, err := PrevDayKey("2023-03-13", "America/New_York")
	require.NoError(t, err)
	require.Equal(t, "2023-03-12", prev)

	prev, err = PrevDayKey("2023-03-12", "America/New_York")
	require.NoError(t, err)
	require.Equal(t, "2023-03-11", prev)

	prev, err = PrevDayKey("2023-11-06", "America/New_York")
	require.NoError(t, err)
	require.Equal(t, "2023-11-05", prev)
}

func TestStartOfWeek(t *testing.T) {
	// Thursday.
	now := time.Date(2023, 6, 15, 15, 30, 0, 0, time.UTC)

	monday := StartOfWeek(now, entity.WeekStartMonday, "")
	require.Equal(t, time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC), monday)

	sunday := StartOfWeek(now, entity.WeekStartSunday, "")
	require.Equal(t, time.Date(2023, 6, 11, 0, 0, 0, 0, time.UTC), sunday)
}

func TestStartOfWeekOnBoundaryDay(t *testing.T) {
	monday := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	require.Equal(t, monday, StartOfWeek(monday, entity.WeekStartMonday, ""))

	sunday := time.Date(2023, 6, 11, 10, 0, 0, 0, time.UTC)
	require.Equal(
		t,
		time.Date(2023, 6, 11, 0, 0, 0, 0, time.UTC),
		StartOfWeek(sunday, entity.WeekStartSunday, ""),
	)
}

func TestStartOfWeekRespectsZone(t *testing.T) {
	// Monday 01:00 UTC is still Sunday evening in New York, so the New
	// York week containing the instant starts a week before the UTC
	// one.
	now := time.Date(2023, 6, 12, 1, 0, 0, 0, time.UTC)

	utcWeek := StartOfWeek(now, entity.WeekStartMonday, "")
	require.Equal(t, time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC), utcWeek)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	nyWeek := StartOfWeek(now, entity.WeekStartMonday, "America/New_York")
	require.Equal(t, time.Date(2023, 6, 5, 0, 0, 0, 0, loc), nyWeek.In(loc))
}
