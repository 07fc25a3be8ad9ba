package repository

import (
	"context"

	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, e *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, e *entity.Comment) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var record entity.Comment
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *commentRepository) GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var records []entity.Comment
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
