package statistic

import (
	"github.com/shelfmark/backend/pkg/dateutil"
	"golang.org/x/exp/slices"
)

// calculateStreaks derives the current and longest run of consecutive
// reading days. readingDays may arrive in any order and with duplicates.
func calculateStreaks(readingDays []string, today, timezone string) (current, longest int) {
	if len(readingDays) == 0 {
		return 0, 0
	}

	days := slices.Clone(readingDays)
	slices.Sort(days)
	days = slices.Compact(days)

	return currentStreak(days, today, timezone), longestStreak(days, timezone)
}

// currentStreak counts backwards from the most recent reading day. The
// streak is alive only if that day is today or yesterday; a day off
// today does not break it until tomorrow.
func currentStreak(sortedDays []string, today, timezone string) int {
	latest := sortedDays[len(sortedDays)-1]
	yesterday, err := dateutil.PrevDayKey(today, timezone)
	if err != nil {
		return 0
	}

	if latest != today && latest != yesterday {
		return 0
	}

	streak := 0
	expected := latest
	for i := len(sortedDays) - 1; i >= 0; i-- {
		if sortedDays[i] != expected {
			break
		}

		streak++
		prev, err := dateutil.PrevDayKey(expected, timezone)
		if err != nil {
			break
		}
		expected = prev
	}

	return streak
}

func longestStreak(sortedDays []string, timezone string) int {
	longest, run := 1, 1
	for i := 1; i < len(sortedDays); i++ {
		prev, err := dateutil.PrevDayKey(sortedDays[i], timezone)
		if err == nil && sortedDays[i-1] == prev {
			run++
		} else {
			run = 1
		}

		if run > longest {
			longest = run
		}
	}

	return longest
}
