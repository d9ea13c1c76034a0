package repository

import (
	"context"
	"errors"

	"github.com/shelfmark/backend/internal/entity"
	"github.com/shelfmark/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, data *entity.Member) error
	Get(ctx context.Context, userID, communityID string) (*entity.Member, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Member, error)
	GetListByCommunityID(ctx context.Context, communityID string, offset, limit int) ([]entity.Member, error)
	IncreaseProgress(ctx context.Context, userID, communityID string, pages int, isFinished bool) error
	Delete(ctx context.Context, userID, communityID string) error
}

type memberRepository struct{}

func NewMemberRepository() *memberRepository {
	return &memberRepository{}
}

func (r *memberRepository) Create(ctx context.Context, data *entity.Member) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *memberRepository) Get(ctx context.Context, userID, communityID string) (*entity.Member, error) {
	var record entity.Member
	err := xcontext.DB(ctx).
		Where("user_id=? AND community_id=?", userID, communityID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *memberRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Member, error) {
	var records []entity.Member
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *memberRepository) GetListByCommunityID(
	ctx context.Context, communityID string, offset, limit int,
) ([]entity.Member, error) {
	var records []entity.Member
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Offset(offset).Limit(limit).
		Order("total_pages DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *memberRepository) IncreaseProgress(
	ctx context.Context, userID, communityID string, pages int, isFinished bool,
) error {
	updateMap := map[string]any{
		"total_pages": gorm.Expr("total_pages+?", pages),
	}

	if isFinished {
		updateMap["books_finished"] = gorm.Expr("books_finished+1")
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("user_id=? AND community_id=?", userID, communityID).
		Updates(updateMap)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	return nil
}

func (r *memberRepository) Delete(ctx context.Context, userID, communityID string) error {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND community_id=?", userID, communityID).
		Delete(&entity.Member{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
