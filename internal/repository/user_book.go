package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserBookFilter struct {
	UserID string
	Status entity.UserBookStatus
}

type UserBookRepository interface {
	Create(ctx context.Context, data *entity.UserBook) error
	GetByID(ctx context.Context, id string) (*entity.UserBook, error)
	GetByUserAndBook(ctx context.Context, userID, bookID string) (*entity.UserBook, error)
	GetList(ctx context.Context, filter UserBookFilter) ([]entity.UserBook, error)
	UpdateCurrentPage(ctx context.Context, id string, currentPage int) error
	MarkFinished(ctx context.Context, id string, completedAt time.Time) error
	DeleteByID(ctx context.Context, id string) error
}

type userBookRepository struct{}

func NewUserBookRepository() *userBookRepository {
	return &userBookRepository{}
}

func (r *userBookRepository) Create(ctx context.Context, data *entity.UserBook) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userBookRepository) GetByID(ctx context.Context, id string) (*entity.UserBook, error) {
	var record entity.UserBook
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userBookRepository) GetByUserAndBook(
	ctx context.Context, userID, bookID string,
) (*entity.UserBook, error) {
	var record entity.UserBook
	err := xcontext.DB(ctx).
		Where("user_id=? AND book_id=?", userID, bookID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userBookRepository) GetList(
	ctx context.Context, filter UserBookFilter,
) ([]entity.UserBook, error) {
	tx := xcontext.DB(ctx).Where("user_id=?", filter.UserID)
	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	var records []entity.UserBook
	if err := tx.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userBookRepository) UpdateCurrentPage(ctx context.Context, id string, currentPage int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserBook{}).
		Where("id=?", id).
		Updates(map[string]any{
			"current_page": currentPage,
			"status":       entity.UserBookReading,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userBookRepository) MarkFinished(ctx context.Context, id string, completedAt time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserBook{}).
		Where("id=?", id).
		Updates(map[string]any{
			"status":       entity.UserBookFinished,
			"completed_at": completedAt,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userBookRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.UserBook{}).Error
}
