package statistic

import (
	"time"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/pkg/dateutil"
	"golang.org/x/exp/slices"
)

const DefaultWindowDays = 30

// ProgressEvent is one recorded reading-progress snapshot. PagesRead is
// a delta since the previous recorded point, not a cumulative position.
type ProgressEvent struct {
	ID         string
	UserBookID string
	BookTitle  string
	PagesRead  int
	RecordedAt time.Time
}

type CompletedBook struct {
	ID          string
	Title       string
	Cover       string
	CompletedAt time.Time
}

// Options controls how instants are mapped to civil days. Now is always
// explicit so that two calls with identical inputs produce identical
// output; an empty Timezone anchors day boundaries to UTC.
type Options struct {
	Now       time.Time
	Timezone  string
	WeekStart entity.WeekStart
	Days      int
}

type DailyActivity struct {
	Date  string `json:"date"`
	Pages int    `json:"pages"`
}

type BookDailyActivity struct {
	Date  string         `json:"date"`
	Pages int            `json:"pages"`
	Books map[string]int `json:"books"`
}

type BookMetadata struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DerivedStats is recomputed fresh on every call and contains only
// JSON-friendly values; calendar dates are pre-formatted day keys.
type DerivedStats struct {
	TotalPagesRead      int                     `json:"total_pages_read"`
	TotalBooksCompleted int                     `json:"total_books_completed"`
	PagesThisWeek       int                     `json:"pages_this_week"`
	PagesThisMonth      int                     `json:"pages_this_month"`
	DailyActivity       []DailyActivity         `json:"daily_activity"`
	DailyActivityByBook []BookDailyActivity     `json:"daily_activity_by_book"`
	BookMetadata        map[string]BookMetadata `json:"book_metadata"`
	ReadingDays         []string                `json:"reading_days"`
	CurrentStreak       int                     `json:"current_streak"`
	LongestStreak       int                     `json:"longest_streak"`
}

// Aggregate folds the full event history and the completed-book list
// into DerivedStats. It never mutates its inputs and tolerates empty
// collections, unsorted events, and events it cannot attribute to a
// civil day (zero instants contribute no activity, negative page counts
// count as zero).
func Aggregate(events []ProgressEvent, completed []CompletedBook, opts Options) DerivedStats {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	if opts.Days <= 0 {
		opts.Days = DefaultWindowDays
	}

	if opts.WeekStart == "" {
		opts.WeekStart = entity.WeekStartMonday
	}

	stats := DerivedStats{
		TotalBooksCompleted: len(completed),
		BookMetadata:        map[string]BookMetadata{},
		ReadingDays:         []string{},
	}

	startOfWeek := dateutil.StartOfWeek(opts.Now, opts.WeekStart, opts.Timezone)
	// A rolling 30-day lookback, not a calendar month. The "month" card
	// of the client is defined this way on purpose.
	startOfMonth := opts.Now.AddDate(0, 0, -30)

	readingDays := map[string]bool{}
	for _, ev := range events {
		pages := ev.PagesRead
		if pages < 0 {
			pages = 0
		}

		stats.TotalPagesRead += pages

		// Book metadata covers the full history, not just the recent
		// window. The first title seen for a book wins.
		if _, ok := stats.BookMetadata[ev.UserBookID]; !ok {
			stats.BookMetadata[ev.UserBookID] = BookMetadata{
				ID:    ev.UserBookID,
				Title: ev.BookTitle,
			}
		}

		if ev.RecordedAt.IsZero() {
			continue
		}

		if !ev.RecordedAt.Before(startOfWeek) {
			stats.PagesThisWeek += pages
		}

		if !ev.RecordedAt.Before(startOfMonth) {
			stats.PagesThisMonth += pages
		}

		if pages > 0 {
			readingDays[dateutil.DayKey(ev.RecordedAt, opts.Timezone)] = true
		}
	}

	for day := range readingDays {
		stats.ReadingDays = append(stats.ReadingDays, day)
	}
	slices.Sort(stats.ReadingDays)

	today := dateutil.DayKey(opts.Now, opts.Timezone)
	stats.DailyActivity, stats.DailyActivityByBook = buildDailyActivity(
		events, stats.BookMetadata, today, opts.Days, opts.Timezone)
	stats.CurrentStreak, stats.LongestStreak = calculateStreaks(
		stats.ReadingDays, today, opts.Timezone)

	return stats
}
