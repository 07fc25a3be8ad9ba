package domain

import (
	"context"
	"errors"

	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/internal/model"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowDomain interface {
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type followDomain struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *followDomain {
	return &followDomain{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (d *followDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	if req.AuthorName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty author name")
	}

	userID := xcontext.RequestUserID(ctx)
	author, err := d.userRepo.GetByName(ctx, req.AuthorName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found author")
		}

		xcontext.Logger(ctx).Errorf("Cannot get author by name: %v", err)
		return nil, errorx.Unknown
	}

	if author.ID == userID {
		return nil, errorx.New(errorx.BadRequest, "Users cannot follow themselves")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	created, err := d.followRepo.Create(ctx, &entity.Follow{
		UserID:   userID,
		AuthorID: author.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
		return nil, errorx.Unknown
	}

	// An existing edge means this is a repeated follow request. It succeeds
	// without touching the counter.
	if created {
		if err := d.userRepo.IncreaseFollowers(ctx, author.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase followers: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.FollowResponse{}, nil
}

func (d *followDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	if req.AuthorName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty author name")
	}

	userID := xcontext.RequestUserID(ctx)
	author, err := d.userRepo.GetByName(ctx, req.AuthorName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found author")
		}

		xcontext.Logger(ctx).Errorf("Cannot get author by name: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	existed, err := d.followRepo.Delete(ctx, userID, author.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
		return nil, errorx.Unknown
	}

	if existed {
		if err := d.userRepo.DecreaseFollowers(ctx, author.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease followers: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.UnfollowResponse{}, nil
}

func (d *followDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	follows, err := d.followRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follow list: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	for _, f := range follows {
		authorIDs = append(authorIDs, f.AuthorID)
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	authorMap := map[string]*entity.User{}
	for i := range authors {
		authorMap[authors[i].ID] = &authors[i]
	}

	// Keep the most-recently-followed-first order of the edge list.
	clientAuthors := []model.User{}
	for _, f := range follows {
		if author, ok := authorMap[f.AuthorID]; ok {
			clientAuthors = append(clientAuthors, model.ConvertUser(author))
		}
	}

	return &model.GetFollowingResponse{Authors: clientAuthors}, nil
}
