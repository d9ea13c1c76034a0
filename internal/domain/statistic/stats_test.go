package statistic

import (
	"testing"
	"time"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

// A fixed reference instant keeps every derived value deterministic.
// 2023-06-15 is a Thursday.
var testNow = time.Date(2023, 6, 15, 15, 30, 0, 0, time.UTC)

func eventAt(t time.Time, userBookID string, pages int) ProgressEvent {
	return ProgressEvent{
		ID:         "log-" + t.Format("20060102150405"),
		UserBookID: userBookID,
		BookTitle:  "Title of " + userBookID,
		PagesRead:  pages,
		RecordedAt: t,
	}
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil, nil, Options{Now: testNow, Days: 7})

	require.Equal(t, 0, stats.TotalPagesRead)
	require.Equal(t, 0, stats.TotalBooksCompleted)
	require.Equal(t, 0, stats.PagesThisWeek)
	require.Equal(t, 0, stats.PagesThisMonth)
	require.Equal(t, 0, stats.CurrentStreak)
	require.Equal(t, 0, stats.LongestStreak)
	require.Empty(t, stats.ReadingDays)
	require.Empty(t, stats.BookMetadata)

	require.Len(t, stats.DailyActivity, 7)
	require.Len(t, stats.DailyActivityByBook, 7)
	for _, day := range stats.DailyActivity {
		require.Equal(t, 0, day.Pages)
	}

	require.Equal(t, "2023-06-09", stats.DailyActivity[0].Date)
	require.Equal(t, "2023-06-15", stats.DailyActivity[6].Date)
}

func TestAggregateIdempotent(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow.Add(-48*time.Hour), "ub1", 10),
		eventAt(testNow.Add(-24*time.Hour), "ub1", 20),
		eventAt(testNow.Add(-2*time.Hour), "ub2", 5),
	}
	completed := []CompletedBook{{ID: "ub1", Title: "Title of ub1", CompletedAt: testNow}}
	opts := Options{Now: testNow, Days: 14}

	first := Aggregate(events, completed, opts)
	second := Aggregate(events, completed, opts)
	require.Equal(t, first, second)
}

func TestAggregateTotalsConserved(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow.Add(-100*24*time.Hour), "ub1", 7),
		eventAt(testNow.Add(-1*time.Hour), "ub2", 13),
		eventAt(testNow.Add(-1*time.Hour), "ub2", 13), // same instant twice
		eventAt(testNow.Add(-500*24*time.Hour), "ub3", 100),
	}

	stats := Aggregate(events, nil, Options{Now: testNow})
	require.Equal(t, 133, stats.TotalPagesRead)

	// Shuffling the input must not change any total.
	reversed := []ProgressEvent{events[3], events[2], events[1], events[0]}
	again := Aggregate(reversed, nil, Options{Now: testNow})
	require.Equal(t, stats.TotalPagesRead, again.TotalPagesRead)
	require.Equal(t, stats.ReadingDays, again.ReadingDays)
	require.Equal(t, stats.CurrentStreak, again.CurrentStreak)
	require.Equal(t, stats.LongestStreak, again.LongestStreak)
}

func TestAggregateQuarantinesBadEvents(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow.Add(-time.Hour), "ub1", -50),
		{ID: "no-instant", UserBookID: "ub2", BookTitle: "Title of ub2", PagesRead: 30},
	}

	stats := Aggregate(events, nil, Options{Now: testNow, Days: 7})

	// Negative page counts count as zero everywhere.
	require.Equal(t, 30, stats.TotalPagesRead)
	require.Empty(t, stats.ReadingDays)
	require.Equal(t, 0, stats.CurrentStreak)

	// Events without an instant still surface their book metadata but
	// contribute to no day bucket or window.
	require.Contains(t, stats.BookMetadata, "ub2")
	require.Equal(t, 0, stats.PagesThisWeek)
	require.Equal(t, 0, stats.PagesThisMonth)
	for _, day := range stats.DailyActivity {
		require.Equal(t, 0, day.Pages)
	}
}

func TestAggregateDailyActivityWindow(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow, "ub1", 10),
		eventAt(testNow.Add(-24*time.Hour), "ub1", 5),
		eventAt(testNow.Add(-24*time.Hour), "ub2", 7),
		// Outside the 7 day window, still counted in the total.
		eventAt(testNow.Add(-10*24*time.Hour), "ub1", 99),
	}

	stats := Aggregate(events, nil, Options{Now: testNow, Days: 7})
	require.Equal(t, 121, stats.TotalPagesRead)

	byDate := map[string]int{}
	for _, day := range stats.DailyActivity {
		byDate[day.Date] = day.Pages
	}
	require.Equal(t, 10, byDate["2023-06-15"])
	require.Equal(t, 12, byDate["2023-06-14"])
	require.Equal(t, 0, byDate["2023-06-13"])

	// Every per-book entry carries every known book, zero-filled.
	for _, day := range stats.DailyActivityByBook {
		require.Len(t, day.Books, 2)
		require.Contains(t, day.Books, "ub1")
		require.Contains(t, day.Books, "ub2")
	}

	yesterday := stats.DailyActivityByBook[5]
	require.Equal(t, "2023-06-14", yesterday.Date)
	require.Equal(t, 5, yesterday.Books["ub1"])
	require.Equal(t, 7, yesterday.Books["ub2"])
	require.Equal(t, 12, yesterday.Pages)
}

func TestAggregateWeekRollup(t *testing.T) {
	// testNow is Thursday 2023-06-15. Monday of that week is 06-12, the
	// Sunday week begins 06-11.
	monday := time.Date(2023, 6, 12, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2023, 6, 11, 10, 0, 0, 0, time.UTC)
	saturday := time.Date(2023, 6, 10, 10, 0, 0, 0, time.UTC)

	events := []ProgressEvent{
		eventAt(monday, "ub1", 10),
		eventAt(sunday, "ub1", 20),
		eventAt(saturday, "ub1", 40),
	}

	withMonday := Aggregate(events, nil, Options{Now: testNow, WeekStart: entity.WeekStartMonday})
	require.Equal(t, 10, withMonday.PagesThisWeek)

	withSunday := Aggregate(events, nil, Options{Now: testNow, WeekStart: entity.WeekStartSunday})
	require.Equal(t, 30, withSunday.PagesThisWeek)
}

func TestAggregateMonthIsRollingWindow(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow.Add(-29*24*time.Hour), "ub1", 11),
		eventAt(testNow.Add(-31*24*time.Hour), "ub1", 23),
	}

	stats := Aggregate(events, nil, Options{Now: testNow})
	require.Equal(t, 11, stats.PagesThisMonth)
	require.Equal(t, 34, stats.TotalPagesRead)
}

func TestAggregateTimezoneBucketing(t *testing.T) {
	// 2023-06-15 01:30 UTC is still 2023-06-14 in New York.
	late := time.Date(2023, 6, 15, 1, 30, 0, 0, time.UTC)

	utc := Aggregate([]ProgressEvent{eventAt(late, "ub1", 5)}, nil, Options{Now: testNow})
	require.Equal(t, []string{"2023-06-15"}, utc.ReadingDays)

	ny := Aggregate([]ProgressEvent{eventAt(late, "ub1", 5)}, nil, Options{
		Now:      testNow,
		Timezone: "America/New_York",
	})
	require.Equal(t, []string{"2023-06-14"}, ny.ReadingDays)

	// Unknown zones fall back to UTC instead of failing.
	bad := Aggregate([]ProgressEvent{eventAt(late, "ub1", 5)}, nil, Options{
		Now:      testNow,
		Timezone: "Not/AZone",
	})
	require.Equal(t, []string{"2023-06-15"}, bad.ReadingDays)
}

func TestWindowKeysAcrossDST(t *testing.T) {
	// US spring forward on 2023-03-12. The window must still hold
	// exactly one key per civil day with no gap and no repeat.
	keys := windowKeys("2023-03-14", 5, "America/New_York")
	require.Equal(t, []string{
		"2023-03-10", "2023-03-11", "2023-03-12", "2023-03-13", "2023-03-14",
	}, keys)
}

func TestCurrentStreakEndsToday(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow, "ub1", 1),
		eventAt(testNow.Add(-24*time.Hour), "ub1", 1),
		eventAt(testNow.Add(-48*time.Hour), "ub1", 1),
	}

	stats := Aggregate(events, nil, Options{Now: testNow})
	require.Equal(t, 3, stats.CurrentStreak)
	require.Equal(t, 3, stats.LongestStreak)
}

func TestCurrentStreakAliveUntilTomorrow(t *testing.T) {
	// No reading today yet, but yesterday ended a 2 day run. The streak
	// is still alive.
	events := []ProgressEvent{
		eventAt(testNow.Add(-24*time.Hour), "ub1", 1),
		eventAt(testNow.Add(-48*time.Hour), "ub1", 1),
	}

	stats := Aggregate(events, nil, Options{Now: testNow})
	require.Equal(t, 2, stats.CurrentStreak)
}

func TestCurrentStreakStale(t *testing.T) {
	// Last reading day is two days ago, so the streak is broken even
	// though the historical run was long.
	events := []ProgressEvent{
		eventAt(testNow.Add(-48*time.Hour), "ub1", 1),
		eventAt(testNow.Add(-72*time.Hour), "ub1", 1),
		eventAt(testNow.Add(-96*time.Hour), "ub1", 1),
	}

	stats := Aggregate(events, nil, Options{Now: testNow})
	require.Equal(t, 0, stats.CurrentStreak)
	require.Equal(t, 3, stats.LongestStreak)
}

func TestLongestStreakSpansGaps(t *testing.T) {
	days := []time.Duration{0, 24, 48, // 3 day run ending today
		120, 144, 168, 192, 216, // 5 day run further back
		360, // isolated day
	}

	var events []ProgressEvent
	for _, d := range days {
		events = append(events, eventAt(testNow.Add(-d*time.Hour), "ub1", 1))
	}

	stats := Aggregate(events, nil, Options{Now: testNow})
	require.Equal(t, 3, stats.CurrentStreak)
	require.Equal(t, 5, stats.LongestStreak)
}

func TestStreaksMultipleEventsPerDay(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow, "ub1", 1),
		eventAt(testNow.Add(-time.Hour), "ub2", 1),
		eventAt(testNow.Add(-2*time.Hour), "ub1", 1),
		eventAt(testNow.Add(-24*time.Hour), "ub1", 1),
	}

	stats := Aggregate(events, nil, Options{Now: testNow})
	require.Equal(t, 2, stats.CurrentStreak)
	require.Equal(t, 2, stats.LongestStreak)
	require.Len(t, stats.ReadingDays, 2)
}

func TestStreaksZeroPageDaysDoNotCount(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow, "ub1", 0),
		eventAt(testNow.Add(-24*time.Hour), "ub1", 10),
	}

	stats := Aggregate(events, nil, Options{Now: testNow})
	require.Equal(t, []string{"2023-06-14"}, stats.ReadingDays)
	require.Equal(t, 1, stats.CurrentStreak)
}

func TestBookMetadataCoversFullHistory(t *testing.T) {
	events := []ProgressEvent{
		eventAt(testNow.Add(-400*24*time.Hour), "ub-old", 10),
		eventAt(testNow, "ub-new", 10),
	}

	stats := Aggregate(events, nil, Options{Now: testNow, Days: 7})
	require.Len(t, stats.BookMetadata, 2)
	require.Equal(t, "Title of ub-old", stats.BookMetadata["ub-old"].Title)
	require.Equal(t, "ub-old", stats.BookMetadata["ub-old"].ID)
}

func TestCompletedBooksCounted(t *testing.T) {
	completed := []CompletedBook{
		{ID: "ub1", Title: "a", CompletedAt: testNow.Add(-24 * time.Hour)},
		{ID: "ub2", Title: "b", CompletedAt: testNow.Add(-400 * 24 * time.Hour)},
	}

	stats := Aggregate(nil, completed, Options{Now: testNow})
	require.Equal(t, 2, stats.TotalBooksCompleted)
}
