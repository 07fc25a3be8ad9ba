package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/internal/model"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type CommentDomain interface {
	AddComment(context.Context, *model.AddCommentRequest) (*model.AddCommentResponse, error)
	GetComments(context.Context, *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *commentDomain {
	return &commentDomain{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (d *commentDomain) AddComment(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.AddCommentResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty comment text")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	author, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment author: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		Text:     req.Text,
		AuthorID: userID,
		PostID:   sql.NullString{Valid: true, String: post.ID},
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddCommentResponse{Comment: model.ConvertComment(comment, author)}, nil
}

func (d *commentDomain) GetComments(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, req.PostID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment list: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	for _, c := range comments {
		if !slices.Contains(authorIDs, c.AuthorID) {
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment authors: %v", err)
		return nil, errorx.Unknown
	}

	authorMap := map[string]*entity.User{}
	for i := range authors {
		authorMap[authors[i].ID] = &authors[i]
	}

	clientComments := []model.Comment{}
	for i := range comments {
		clientComments = append(clientComments,
			model.ConvertComment(&comments[i], authorMap[comments[i].AuthorID]))
	}

	return &model.GetCommentsResponse{Comments: clientComments}, nil
}
