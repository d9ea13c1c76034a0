package statistic

import (
	"github.com/shelfmark/backend/pkg/dateutil"
)

// windowKeys returns the day keys of the last days civil days ending at
// today, oldest first. Stepping day by day through the timezone keeps
// the window exactly days entries long across DST transitions.
func windowKeys(today string, days int, timezone string) []string {
	keys := make([]string, days)
	day := today
	for i := days - 1; i >= 0; i-- {
		keys[i] = day
		if i == 0 {
			break
		}

		prev, err := dateutil.PrevDayKey(day, timezone)
		if err != nil {
			// Only reachable with a malformed key; repeat rather than
			// shorten the window.
			prev = day
		}
		day = prev
	}

	return keys
}

// buildDailyActivity buckets events into civil days and materializes
// both window series. Days with no activity appear with zero pages, and
// every per-book map carries an entry for every known book so clients
// can chart without null checks.
func buildDailyActivity(
	events []ProgressEvent,
	books map[string]BookMetadata,
	today string,
	days int,
	timezone string,
) ([]DailyActivity, []BookDailyActivity) {
	totals := map[string]int{}
	perBook := map[string]map[string]int{}
	for _, ev := range events {
		if ev.RecordedAt.IsZero() {
			continue
		}

		pages := ev.PagesRead
		if pages < 0 {
			pages = 0
		}

		day := dateutil.DayKey(ev.RecordedAt, timezone)
		totals[day] += pages

		if perBook[day] == nil {
			perBook[day] = map[string]int{}
		}
		perBook[day][ev.UserBookID] += pages
	}

	overall := make([]DailyActivity, 0, days)
	byBook := make([]BookDailyActivity, 0, days)
	for _, day := range windowKeys(today, days, timezone) {
		overall = append(overall, DailyActivity{Date: day, Pages: totals[day]})

		bookPages := make(map[string]int, len(books))
		for id := range books {
			bookPages[id] = perBook[day][id]
		}

		byBook = append(byBook, BookDailyActivity{
			Date:  day,
			Pages: totals[day],
			Books: bookPages,
		})
	}

	return overall, byBook
}
