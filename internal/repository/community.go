package repository

import (
	"context"
	"errors"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListCommunityFilter struct {
	Q      string
	Offset int
	Limit  int
}

type CommunityRepository interface {
	Create(ctx context.Context, data *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Community, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Community, error)
	GetList(ctx context.Context, filter GetListCommunityFilter) ([]entity.Community, error)
	IncreaseFollowers(ctx context.Context, id string, delta int) error
}

type communityRepository struct{}

func NewCommunityRepository() *communityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Create(ctx context.Context, data *entity.Community) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	var record entity.Community
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	var record entity.Community
	if err := xcontext.DB(ctx).Where("handle=?", handle).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Community, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Community
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *communityRepository) GetList(
	ctx context.Context, filter GetListCommunityFilter,
) ([]entity.Community, error) {
	tx := xcontext.DB(ctx).Model(&entity.Community{}).
		Offset(filter.Offset).Limit(filter.Limit).
		Order("followers DESC")

	if filter.Q != "" {
		q := "%" + filter.Q + "%"
		tx = tx.Where("handle LIKE ? OR display_name LIKE ?", q, q)
	}

	var records []entity.Community
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *communityRepository) IncreaseFollowers(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Community{}).
		Where("id=?", id).
		Update("followers", gorm.Expr("followers+?", delta))

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
