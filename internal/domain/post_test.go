package domain

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/inkpost/backend/internal/model"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/testutil"
	"github.com/inkpost/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newPostDomainForTest(redisClient *testutil.MockRedisClient) *postDomain {
	if redisClient == nil {
		redisClient = &testutil.MockRedisClient{}
	}

	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewUserRepository(),
		repository.NewGroupRepository(),
		repository.NewCommentRepository(),
		repository.NewFollowRepository(),
		redisClient,
		&testutil.MockStorage{},
	)
}

func Test_postDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	domain := newPostDomainForTest(nil)

	resp, err := domain.Create(ctx, &model.CreatePostRequest{
		Text:      "A brand new post",
		GroupSlug: testutil.Group1.Slug,
	})
	require.NoError(t, err)
	require.Equal(t, "A brand new post", resp.Post.Text)
	require.Equal(t, testutil.User1.Name, resp.Post.Author.Name)
	require.NotNil(t, resp.Post.Group)
	require.Equal(t, testutil.Group1.Slug, resp.Post.Group.Slug)

	_, err = domain.Create(ctx, &model.CreatePostRequest{Text: ""})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = domain.Create(ctx, &model.CreatePostRequest{
		Text:      "Pointing at nothing",
		GroupSlug: "no-such-group",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_postDomain_Get_withComments(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)

	domain := newPostDomainForTest(nil)

	resp, err := domain.Get(ctx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Post1.Text, resp.Post.Text)
	require.Len(t, resp.Comments, 1)
	require.Equal(t, testutil.Comment1.Text, resp.Comments[0].Text)
	require.Equal(t, testutil.User2.Name, resp.Comments[0].Author.Name)

	_, err = domain.Get(ctx, &model.GetPostRequest{ID: "no-such-post"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_postDomain_GetList_pagination(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User3.ID)

	domain := newPostDomainForTest(nil)

	// The fixtures carry 3 posts. Add 10 more for a total of 13, which
	// spreads over two pages of 10.
	for i := 0; i < 10; i++ {
		_, err := domain.Create(ctx, &model.CreatePostRequest{
			Text: fmt.Sprintf("filler post %d", i),
		})
		require.NoError(t, err)
	}

	page1, err := domain.GetList(ctx, &model.GetPostsRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, page1.Posts, 10)
	require.Equal(t, 1, page1.Page)
	require.EqualValues(t, 13, page1.Total)

	page2, err := domain.GetList(ctx, &model.GetPostsRequest{Page: 2})
	require.NoError(t, err)
	require.Len(t, page2.Posts, 3)
	require.Equal(t, 2, page2.Page)

	// An out-of-range page resolves to the nearest valid one.
	clamped, err := domain.GetList(ctx, &model.GetPostsRequest{Page: 50})
	require.NoError(t, err)
	require.Equal(t, 2, clamped.Page)
	require.Len(t, clamped.Posts, 3)

	first, err := domain.GetList(ctx, &model.GetPostsRequest{Page: 0})
	require.NoError(t, err)
	require.Equal(t, 1, first.Page)
}

func Test_postDomain_GetList_frontPageCache(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)

	cache := map[string][]byte{}
	redisClient := &testutil.MockRedisClient{
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			cache[key] = []byte("set")
			return nil
		},
		DelFunc: func(ctx context.Context, key ...string) error {
			for _, k := range key {
				delete(cache, k)
			}
			return nil
		},
	}

	domain := newPostDomainForTest(redisClient)

	_, err := domain.GetList(ctx, &model.GetPostsRequest{Page: 1})
	require.NoError(t, err)
	require.Contains(t, cache, frontPageCacheKey)

	// Any post mutation drops the cached front page.
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.Create(ctx, &model.CreatePostRequest{Text: "invalidate it"})
	require.NoError(t, err)
	require.NotContains(t, cache, frontPageCacheKey)
}

func Test_postDomain_GetGroupPosts(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)

	domain := newPostDomainForTest(nil)

	resp, err := domain.GetGroupPosts(ctx, &model.GetGroupPostsRequest{
		GroupSlug: testutil.Group1.Slug,
		Page:      1,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Group1.Slug, resp.Group.Slug)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)

	_, err = domain.GetGroupPosts(ctx, &model.GetGroupPostsRequest{GroupSlug: "no-such-group"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_postDomain_GetUserPosts(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)

	domain := newPostDomainForTest(nil)
	followRepo := repository.NewFollowRepository()
	userRepo := repository.NewUserRepository()
	followDomain := NewFollowDomain(followRepo, userRepo)

	// Anonymous visitors never see the profile as followed.
	resp, err := domain.GetUserPosts(ctx, &model.GetUserPostsRequest{
		UserName: testutil.User1.Name,
		Page:     1,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Name, resp.Author.Name)
	require.Len(t, resp.Posts, 2)
	require.False(t, resp.Following)

	viewerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = followDomain.Follow(viewerCtx, &model.FollowRequest{AuthorName: testutil.User1.Name})
	require.NoError(t, err)

	resp, err = domain.GetUserPosts(viewerCtx, &model.GetUserPostsRequest{
		UserName: testutil.User1.Name,
		Page:     1,
	})
	require.NoError(t, err)
	require.True(t, resp.Following)
}

func Test_postDomain_GetFollowingPosts(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)

	domain := newPostDomainForTest(nil)
	followDomain := NewFollowDomain(repository.NewFollowRepository(), repository.NewUserRepository())

	viewerCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)

	empty, err := domain.GetFollowingPosts(viewerCtx, &model.GetFollowingPostsRequest{Page: 1})
	require.NoError(t, err)
	require.Empty(t, empty.Posts)

	_, err = followDomain.Follow(viewerCtx, &model.FollowRequest{AuthorName: testutil.User1.Name})
	require.NoError(t, err)

	resp, err := domain.GetFollowingPosts(viewerCtx, &model.GetFollowingPostsRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)
	for _, p := range resp.Posts {
		require.Equal(t, testutil.User1.Name, p.Author.Name)
	}

	// A post published after the follow shows up in the follower's feed but
	// not in the feed of a user who never followed the author.
	authorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	created, err := domain.Create(authorCtx, &model.CreatePostRequest{Text: "fresh off the press"})
	require.NoError(t, err)

	resp, err = domain.GetFollowingPosts(viewerCtx, &model.GetFollowingPostsRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 3)
	require.Equal(t, created.Post.ID, resp.Posts[0].ID)

	otherCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	otherResp, err := domain.GetFollowingPosts(otherCtx, &model.GetFollowingPostsRequest{Page: 1})
	require.NoError(t, err)
	require.Empty(t, otherResp.Posts)
}

func Test_postDomain_UpdateByID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)

	domain := newPostDomainForTest(nil)

	authorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.UpdateByID(authorCtx, &model.UpdatePostRequest{
		ID:        testutil.Post1.ID,
		Text:      "Edited text",
		GroupSlug: testutil.Group2.Slug,
	})
	require.NoError(t, err)
	require.Equal(t, "Edited text", resp.Post.Text)
	require.NotNil(t, resp.Post.Group)
	require.Equal(t, testutil.Group2.Slug, resp.Post.Group.Slug)

	// Someone else's post reads as missing, not as forbidden.
	strangerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = domain.UpdateByID(strangerCtx, &model.UpdatePostRequest{
		ID:   testutil.Post1.ID,
		Text: "Hijacked",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_postDomain_DeleteByID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)

	domain := newPostDomainForTest(nil)

	strangerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := domain.DeleteByID(strangerCtx, &model.DeletePostRequest{ID: testutil.Post1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)

	authorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.DeleteByID(authorCtx, &model.DeletePostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)

	_, err = domain.Get(ctx, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}
