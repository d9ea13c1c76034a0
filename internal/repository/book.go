package repository

import (
	"context"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/pkg/xcontext"
)

type SearchBookFilter struct {
	Q      string
	Offset int
	Limit  int
}

type BookRepository interface {
	Create(ctx context.Context, data *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Book, error)
	Search(ctx context.Context, filter SearchBookFilter) ([]entity.Book, error)
	DeleteByID(ctx context.Context, id string) error
}

type bookRepository struct{}

func NewBookRepository() *bookRepository {
	return &bookRepository{}
}

func (r *bookRepository) Create(ctx context.Context, data *entity.Book) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	var record entity.Book
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *bookRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Book
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *bookRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Book{}).Error
}

func (r *bookRepository) Search(ctx context.Context, filter SearchBookFilter) ([]entity.Book, error) {
	tx := xcontext.DB(ctx).Model(&entity.Book{}).
		Offset(filter.Offset).Limit(filter.Limit).
		Order("created_at DESC")

	if filter.Q != "" {
		q := "%" + filter.Q + "%"
		tx = tx.Where("title LIKE ? OR author LIKE ?", q, q)
	}

	var records []entity.Book
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
