package repository

import (
	"context"

	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	// Create inserts the edge if it does not exist yet. It reports whether
	// a new edge was actually created, so callers can keep follower
	// counters in step. The conflict target is the composite primary key,
	// which makes repeated follow requests idempotent without a
	// check-then-insert race.
	Create(ctx context.Context, e *entity.Follow) (bool, error)

	// Delete removes the edge if present and reports whether it existed.
	Delete(ctx context.Context, userID, authorID string) (bool, error)

	Get(ctx context.Context, userID, authorID string) (*entity.Follow, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Follow, error)
	Count(ctx context.Context, authorID string) (int64, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, e *entity.Follow) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(e)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND author_id=?", userID, authorID).
		Delete(&entity.Follow{})

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *followRepository) Get(ctx context.Context, userID, authorID string) (*entity.Follow, error) {
	var record entity.Follow
	err := xcontext.DB(ctx).
		Where("user_id=? AND author_id=?", userID, authorID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *followRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Follow, error) {
	var records []entity.Follow
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followRepository) Count(ctx context.Context, authorID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("author_id=?", authorID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
