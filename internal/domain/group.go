package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/internal/model"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/crypto"
	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GroupDomain interface {
	Create(context.Context, *model.CreateGroupRequest) (*model.CreateGroupResponse, error)
	Get(context.Context, *model.GetGroupRequest) (*model.GetGroupResponse, error)
	GetList(context.Context, *model.GetGroupsRequest) (*model.GetGroupsResponse, error)
}

type groupDomain struct {
	groupRepo repository.GroupRepository
}

func NewGroupDomain(groupRepo repository.GroupRepository) *groupDomain {
	return &groupDomain{groupRepo: groupRepo}
}

func (d *groupDomain) Create(
	ctx context.Context, req *model.CreateGroupRequest,
) (*model.CreateGroupResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.Slug != "" {
		if err := checkGroupSlug(req.Slug); err != nil {
			return nil, err
		}

		_, err := d.groupRepo.GetBySlug(ctx, req.Slug)
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get group by slug: %v", err)
				return nil, errorx.Unknown
			}

			return nil, errorx.New(errorx.AlreadyExists, "Duplicated slug")
		}
	} else {
		originSlug := generateGroupSlug(req.Title)
		slug := originSlug
		power := 2
		for {
			if checkGroupSlug(slug) == nil {
				_, err := d.groupRepo.GetBySlug(ctx, slug)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					break
				} else if err != nil {
					xcontext.Logger(ctx).Errorf("Cannot get group by slug: %v", err)
					return nil, errorx.Unknown
				}
			}

			// The slug existed (or the title produced nothing usable), so
			// append a random numeric suffix to the origin slug. The base is
			// re-truncated to keep the result within the column size. An
			// all-symbol title leaves an empty base, in which case the suffix
			// stands alone to avoid a leading dash.
			suffix := strconv.Itoa(crypto.RandIntn(int(math.Pow10(power))))
			base := originSlug
			if len(base)+len(suffix)+1 > maxSlugLength {
				base = base[:maxSlugLength-len(suffix)-1]
			}

			if base == "" {
				slug = suffix
			} else {
				slug = fmt.Sprintf("%s-%s", base, suffix)
			}
			power++
		}

		req.Slug = slug
	}

	group := &entity.Group{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if userID := xcontext.RequestUserID(ctx); userID != "" {
		group.CreatedBy = sql.NullString{Valid: true, String: userID}
	}

	if err := d.groupRepo.Create(ctx, group); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create group: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateGroupResponse{Group: model.ConvertGroup(group)}, nil
}

func (d *groupDomain) Get(
	ctx context.Context, req *model.GetGroupRequest,
) (*model.GetGroupResponse, error) {
	if req.GroupSlug == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty group slug")
	}

	group, err := d.groupRepo.GetBySlug(ctx, req.GroupSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group by slug: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGroupResponse{Group: model.ConvertGroup(group)}, nil
}

func (d *groupDomain) GetList(
	ctx context.Context, req *model.GetGroupsRequest,
) (*model.GetGroupsResponse, error) {
	groups, err := d.groupRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get group list: %v", err)
		return nil, errorx.Unknown
	}

	clientGroups := []model.Group{}
	for i := range groups {
		clientGroups = append(clientGroups, model.ConvertGroup(&groups[i]))
	}

	return &model.GetGroupsResponse{Groups: clientGroups}, nil
}
