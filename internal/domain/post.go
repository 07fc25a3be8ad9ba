package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/inkpost/backend/internal/common"
	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/internal/model"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/storage"
	"github.com/inkpost/backend/pkg/xcontext"
	"github.com/inkpost/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// frontPageCacheKey holds the rendered first page of the global feed. It is
// short-lived and dropped eagerly on any post mutation.
const frontPageCacheKey = "posts:front_page"

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	GetList(context.Context, *model.GetPostsRequest) (*model.GetPostsResponse, error)
	GetGroupPosts(context.Context, *model.GetGroupPostsRequest) (*model.GetGroupPostsResponse, error)
	GetUserPosts(context.Context, *model.GetUserPostsRequest) (*model.GetUserPostsResponse, error)
	GetFollowingPosts(context.Context, *model.GetFollowingPostsRequest) (*model.GetFollowingPostsResponse, error)
	UpdateByID(context.Context, *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	DeleteByID(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
	UploadImage(context.Context, *model.UploadPostImageRequest) (*model.UploadPostImageResponse, error)
}

type postDomain struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	redisClient xredis.Client
	storage     storage.Storage
}

func NewPostDomain(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	redisClient xredis.Client,
	storage storage.Storage,
) *postDomain {
	return &postDomain{
		postRepo:    postRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		redisClient: redisClient,
		storage:     storage,
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	if req.Text == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty text")
	}

	userID := xcontext.RequestUserID(ctx)
	author, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post author: %v", err)
		return nil, errorx.Unknown
	}

	post := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		Text:     req.Text,
		AuthorID: userID,
		ImageURL: req.ImageURL,
	}

	var group *entity.Group
	if req.GroupSlug != "" {
		group, err = d.groupRepo.GetBySlug(ctx, req.GroupSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found group")
			}

			xcontext.Logger(ctx).Errorf("Cannot get group by slug: %v", err)
			return nil, errorx.Unknown
		}

		post.GroupID = sql.NullString{Valid: true, String: group.ID}
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	d.dropFrontPageCache(ctx)
	return &model.CreatePostResponse{Post: model.ConvertPost(post, author, group)}, nil
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, []entity.Post{*post})
	if err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment list: %v", err)
		return nil, errorx.Unknown
	}

	commentAuthorIDs := []string{}
	for _, c := range comments {
		if !slices.Contains(commentAuthorIDs, c.AuthorID) {
			commentAuthorIDs = append(commentAuthorIDs, c.AuthorID)
		}
	}

	commentAuthors, err := d.userRepo.GetByIDs(ctx, commentAuthorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment authors: %v", err)
		return nil, errorx.Unknown
	}

	authorMap := map[string]*entity.User{}
	for i := range commentAuthors {
		authorMap[commentAuthors[i].ID] = &commentAuthors[i]
	}

	clientComments := []model.Comment{}
	for i := range comments {
		clientComments = append(clientComments,
			model.ConvertComment(&comments[i], authorMap[comments[i].AuthorID]))
	}

	return &model.GetPostResponse{
		Post:     clientPosts[0],
		Comments: clientComments,
	}, nil
}

func (d *postDomain) GetList(
	ctx context.Context, req *model.GetPostsRequest,
) (*model.GetPostsResponse, error) {
	total, err := d.postRepo.Count(ctx, repository.GetListPostFilter{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	pageSize := xcontext.Configs(ctx).Feed.PageSize
	page, offset := resolvePage(req.Page, pageSize, total)

	// The first page of the global feed is by far the hottest read, so it is
	// served from cache for a short interval. Any cache failure falls through
	// to the database.
	if page == 1 {
		var cached model.GetPostsResponse
		err := d.redisClient.GetObj(ctx, frontPageCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}

		if !errors.Is(err, redis.Nil) {
			xcontext.Logger(ctx).Warnf("Cannot read front page cache: %v", err)
		}
	}

	posts, err := d.postRepo.GetList(ctx, repository.GetListPostFilter{
		Offset: offset,
		Limit:  pageSize,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post list: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	resp := &model.GetPostsResponse{Posts: clientPosts, Page: page, Total: total}
	if page == 1 {
		ttl := xcontext.Configs(ctx).Feed.FrontPageTTL
		if err := d.redisClient.SetObj(ctx, frontPageCacheKey, resp, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot write front page cache: %v", err)
		}
	}

	return resp, nil
}

func (d *postDomain) GetGroupPosts(
	ctx context.Context, req *model.GetGroupPostsRequest,
) (*model.GetGroupPostsResponse, error) {
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

	filter := repository.GetListPostFilter{GroupID: group.ID}
	total, err := d.postRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count group posts: %v", err)
		return nil, errorx.Unknown
	}

	pageSize := xcontext.Configs(ctx).Feed.PageSize
	page, offset := resolvePage(req.Page, pageSize, total)

	filter.Offset = offset
	filter.Limit = pageSize
	posts, err := d.postRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get group post list: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetGroupPostsResponse{
		Group: model.ConvertGroup(group),
		Posts: clientPosts,
		Page:  page,
		Total: total,
	}, nil
}

func (d *postDomain) GetUserPosts(
	ctx context.Context, req *model.GetUserPostsRequest,
) (*model.GetUserPostsResponse, error) {
	if req.UserName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty username")
	}

	author, err := d.userRepo.GetByName(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	filter := repository.GetListPostFilter{AuthorID: author.ID}
	total, err := d.postRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count user posts: %v", err)
		return nil, errorx.Unknown
	}

	pageSize := xcontext.Configs(ctx).Feed.PageSize
	page, offset := resolvePage(req.Page, pageSize, total)

	filter.Offset = offset
	filter.Limit = pageSize
	posts, err := d.postRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user post list: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	// Following reflects whether the requesting user follows this profile.
	// It stays false for anonymous visitors.
	following := false
	if viewerID := xcontext.RequestUserID(ctx); viewerID != "" && viewerID != author.ID {
		_, err := d.followRepo.Get(ctx, viewerID, author.ID)
		if err == nil {
			following = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get follow: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.GetUserPostsResponse{
		Author:    model.ConvertUser(author),
		Posts:     clientPosts,
		Page:      page,
		Total:     total,
		Following: following,
	}, nil
}

func (d *postDomain) GetFollowingPosts(
	ctx context.Context, req *model.GetFollowingPostsRequest,
) (*model.GetFollowingPostsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	filter := repository.GetListPostFilter{FollowedBy: userID}
	total, err := d.postRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following posts: %v", err)
		return nil, errorx.Unknown
	}

	pageSize := xcontext.Configs(ctx).Feed.PageSize
	page, offset := resolvePage(req.Page, pageSize, total)

	filter.Offset = offset
	filter.Limit = pageSize
	posts, err := d.postRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following post list: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingPostsResponse{Posts: clientPosts, Page: page, Total: total}, nil
}

func (d *postDomain) UpdateByID(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	if req.Text == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty text")
	}

	post, err := d.getOwnPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := entity.Post{Text: req.Text, ImageURL: req.ImageURL}
	var group *entity.Group
	if req.GroupSlug != "" {
		group, err = d.groupRepo.GetBySlug(ctx, req.GroupSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found group")
			}

			xcontext.Logger(ctx).Errorf("Cannot get group by slug: %v", err)
			return nil, errorx.Unknown
		}

		updated.GroupID = sql.NullString{Valid: true, String: group.ID}
	}

	if err := d.postRepo.UpdateByID(ctx, post.ID, updated); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
		return nil, errorx.Unknown
	}

	post, err = d.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get updated post: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post author: %v", err)
		return nil, errorx.Unknown
	}

	d.dropFrontPageCache(ctx)
	return &model.UpdatePostResponse{Post: model.ConvertPost(post, author, group)}, nil
}

func (d *postDomain) DeleteByID(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.getOwnPost(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.postRepo.DeleteByID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	d.dropFrontPageCache(ctx)
	return &model.DeletePostResponse{}, nil
}

func (d *postDomain) UploadImage(
	ctx context.Context, req *model.UploadPostImageRequest,
) (*model.UploadPostImageResponse, error) {
	uresp, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		return nil, err
	}

	return &model.UploadPostImageResponse{URL: uresp.Url}, nil
}

// getOwnPost loads a post and verifies the requesting user is its author.
// Posts of other authors are reported as not found rather than forbidden,
// so the response does not reveal whether the id exists.
func (d *postDomain) getOwnPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := d.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.NotFound, "Not found post")
	}

	return post, nil
}

func (d *postDomain) convertPosts(ctx context.Context, posts []entity.Post) ([]model.Post, error) {
	authorIDs := []string{}
	groupIDs := []string{}
	for _, p := range posts {
		if !slices.Contains(authorIDs, p.AuthorID) {
			authorIDs = append(authorIDs, p.AuthorID)
		}

		if p.GroupID.Valid && !slices.Contains(groupIDs, p.GroupID.String) {
			groupIDs = append(groupIDs, p.GroupID.String)
		}
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post authors: %v", err)
		return nil, errorx.Unknown
	}

	groups, err := d.groupRepo.GetByIDs(ctx, groupIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post groups: %v", err)
		return nil, errorx.Unknown
	}

	authorMap := map[string]*entity.User{}
	for i := range authors {
		authorMap[authors[i].ID] = &authors[i]
	}

	groupMap := map[string]*entity.Group{}
	for i := range groups {
		groupMap[groups[i].ID] = &groups[i]
	}

	clientPosts := []model.Post{}
	for i := range posts {
		var group *entity.Group
		if posts[i].GroupID.Valid {
			group = groupMap[posts[i].GroupID.String]
		}

		clientPosts = append(clientPosts,
			model.ConvertPost(&posts[i], authorMap[posts[i].AuthorID], group))
	}

	return clientPosts, nil
}

func (d *postDomain) dropFrontPageCache(ctx context.Context) {
	if err := d.redisClient.Del(ctx, frontPageCacheKey); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot drop front page cache: %v", err)
	}
}
