package repository

import (
	"context"

	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GroupRepository interface {
	Create(ctx context.Context, e *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Group, error)
	GetList(ctx context.Context) ([]entity.Group, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Group, error)
	UpdateByID(ctx context.Context, id string, e entity.Group) error
	DeleteByID(ctx context.Context, id string) error
}

type groupRepository struct{}

func NewGroupRepository() *groupRepository {
	return &groupRepository{}
}

func (r *groupRepository) Create(ctx context.Context, e *entity.Group) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	var record entity.Group
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*entity.Group, error) {
	var record entity.Group
	if err := xcontext.DB(ctx).Take(&record, "slug=?", slug).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *groupRepository) GetList(ctx context.Context) ([]entity.Group, error) {
	var records []entity.Group
	if err := xcontext.DB(ctx).Order("title ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *groupRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Group
	if err := xcontext.DB(ctx).Find(&records, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *groupRepository) UpdateByID(ctx context.Context, id string, e entity.Group) error {
	return xcontext.DB(ctx).
		Model(&entity.Group{}).
		Where("id=?", id).
		Omit("created_by", "created_at", "id").
		Updates(e).Error
}

func (r *groupRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Group{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
