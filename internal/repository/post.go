package repository

import (
	"context"

	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// GetListPostFilter narrows a post listing. At most one of GroupID,
// AuthorID, and FollowedBy is expected per query; every listing is ordered
// newest publication first.
type GetListPostFilter struct {
	GroupID  string
	AuthorID string

	// FollowedBy selects posts whose author is followed by this user.
	FollowedBy string

	Offset int
	Limit  int
}

type PostRepository interface {
	Create(ctx context.Context, e *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetList(ctx context.Context, filter GetListPostFilter) ([]entity.Post, error)
	Count(ctx context.Context, filter GetListPostFilter) (int64, error)
	UpdateByID(ctx context.Context, id string, e entity.Post) error
	DeleteByID(ctx context.Context, id string) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, e *entity.Post) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var record entity.Post
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func applyPostFilter(tx *gorm.DB, filter GetListPostFilter) *gorm.DB {
	if filter.GroupID != "" {
		tx = tx.Where("posts.group_id=?", filter.GroupID)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("posts.author_id=?", filter.AuthorID)
	}

	if filter.FollowedBy != "" {
		tx = tx.Joins("JOIN follows ON follows.author_id=posts.author_id").
			Where("follows.user_id=?", filter.FollowedBy)
	}

	return tx
}

func (r *postRepository) GetList(ctx context.Context, filter GetListPostFilter) ([]entity.Post, error) {
	tx := applyPostFilter(xcontext.DB(ctx).Model(&entity.Post{}), filter).
		Order("posts.created_at DESC, posts.id DESC")

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var records []entity.Post
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) Count(ctx context.Context, filter GetListPostFilter) (int64, error) {
	var result int64
	tx := applyPostFilter(xcontext.DB(ctx).Model(&entity.Post{}), filter)
	if err := tx.Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

// UpdateByID changes the mutable fields only. The publication timestamp and
// the author never change after creation.
func (r *postRepository) UpdateByID(ctx context.Context, id string, e entity.Post) error {
	updateMap := map[string]any{}
	if e.Text != "" {
		updateMap["text"] = e.Text
	}

	updateMap["group_id"] = e.GroupID

	if e.ImageURL != "" {
		updateMap["image_url"] = e.ImageURL
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Updates(updateMap)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *postRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
