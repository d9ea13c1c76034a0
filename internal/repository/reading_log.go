package repository

import (
	"context"
	"time"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ReadingLogFilter struct {
	UserID     string
	UserBookID string
	Begin      time.Time
	End        time.Time
}

type StatisticReadingFilter struct {
	CommunityID string
	Begin       time.Time
	End         time.Time
}

type UserReadingAggregate struct {
	UserID        string
	Pages         int64
	BooksFinished int64
}

type ReadingLogRepository interface {
	Create(ctx context.Context, data *entity.ReadingLog) error
	GetList(ctx context.Context, filter ReadingLogFilter) ([]entity.ReadingLog, error)
	SumPages(ctx context.Context, filter ReadingLogFilter) (int64, error)
	Statistic(ctx context.Context, filter StatisticReadingFilter) ([]UserReadingAggregate, error)
}

type readingLogRepository struct{}

func NewReadingLogRepository() *readingLogRepository {
	return &readingLogRepository{}
}

func (r *readingLogRepository) Create(ctx context.Context, data *entity.ReadingLog) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *readingLogRepository) GetList(
	ctx context.Context, filter ReadingLogFilter,
) ([]entity.ReadingLog, error) {
	tx := applyReadingLogFilter(ctx, filter)

	var records []entity.ReadingLog
	if err := tx.Order("recorded_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *readingLogRepository) SumPages(
	ctx context.Context, filter ReadingLogFilter,
) (int64, error) {
	var total int64
	err := applyReadingLogFilter(ctx, filter).
		Select("COALESCE(SUM(pages_read), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// Statistic aggregates the reading activity of every member of a
// community inside a time window. It feeds the leaderboard backfill.
func (r *readingLogRepository) Statistic(
	ctx context.Context, filter StatisticReadingFilter,
) ([]UserReadingAggregate, error) {
	var pages []UserReadingAggregate
	err := xcontext.DB(ctx).Model(&entity.ReadingLog{}).
		Select("reading_logs.user_id AS user_id, COALESCE(SUM(reading_logs.pages_read), 0) AS pages").
		Joins("JOIN members ON members.user_id = reading_logs.user_id").
		Where("members.community_id = ?", filter.CommunityID).
		Where("reading_logs.recorded_at >= ?", filter.Begin).
		Where("reading_logs.recorded_at < ?", filter.End).
		Group("reading_logs.user_id").
		Scan(&pages).Error
	if err != nil {
		return nil, err
	}

	var finished []UserReadingAggregate
	err = xcontext.DB(ctx).Model(&entity.UserBook{}).
		Select("user_books.user_id AS user_id, COUNT(*) AS books_finished").
		Joins("JOIN members ON members.user_id = user_books.user_id").
		Where("members.community_id = ?", filter.CommunityID).
		Where("user_books.status = ?", entity.UserBookFinished).
		Where("user_books.completed_at >= ?", filter.Begin).
		Where("user_books.completed_at < ?", filter.End).
		Group("user_books.user_id").
		Scan(&finished).Error
	if err != nil {
		return nil, err
	}

	merged := map[string]*UserReadingAggregate{}
	for _, p := range pages {
		record := p
		merged[p.UserID] = &record
	}

	for _, f := range finished {
		if record, ok := merged[f.UserID]; ok {
			record.BooksFinished = f.BooksFinished
		} else {
			record := f
			merged[f.UserID] = &record
		}
	}

	results := make([]UserReadingAggregate, 0, len(merged))
	for _, record := range merged {
		results = append(results, *record)
	}

	return results, nil
}

func applyReadingLogFilter(ctx context.Context, filter ReadingLogFilter) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.ReadingLog{})
	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.UserBookID != "" {
		tx = tx.Where("user_book_id=?", filter.UserBookID)
	}

	if !filter.Begin.IsZero() {
		tx = tx.Where("recorded_at >= ?", filter.Begin)
	}

	if !filter.End.IsZero() {
		tx = tx.Where("recorded_at < ?", filter.End)
	}

	return tx
}
