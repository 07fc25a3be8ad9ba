package domain

import (
	"testing"

	"github.com/inkpost/backend/internal/model"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/testutil"
	"github.com/inkpost/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newFollowDomainForTest() *followDomain {
	return NewFollowDomain(repository.NewFollowRepository(), repository.NewUserRepository())
}

func Test_followDomain_Follow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	domain := newFollowDomainForTest()
	userRepo := repository.NewUserRepository()

	_, err := domain.Follow(ctx, &model.FollowRequest{AuthorName: testutil.User1.Name})
	require.NoError(t, err)

	author, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, author.Followers)

	resp, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Authors, 1)
	require.Equal(t, testutil.User1.Name, resp.Authors[0].Name)
}

func Test_followDomain_Follow_idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	domain := newFollowDomainForTest()
	userRepo := repository.NewUserRepository()

	for i := 0; i < 3; i++ {
		_, err := domain.Follow(ctx, &model.FollowRequest{AuthorName: testutil.User1.Name})
		require.NoError(t, err)
	}

	// Repeated requests collapse into one edge and one counter increment.
	author, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, author.Followers)

	resp, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Authors, 1)
}

func Test_followDomain_Follow_self(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	domain := newFollowDomainForTest()

	_, err := domain.Follow(ctx, &model.FollowRequest{AuthorName: testutil.User1.Name})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	resp, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Authors)
}

func Test_followDomain_Follow_unknownAuthor(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	domain := newFollowDomainForTest()

	_, err := domain.Follow(ctx, &model.FollowRequest{AuthorName: "no_such_author"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_followDomain_Unfollow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	domain := newFollowDomainForTest()
	userRepo := repository.NewUserRepository()

	_, err := domain.Follow(ctx, &model.FollowRequest{AuthorName: testutil.User1.Name})
	require.NoError(t, err)

	_, err = domain.Unfollow(ctx, &model.UnfollowRequest{AuthorName: testutil.User1.Name})
	require.NoError(t, err)

	author, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, author.Followers)

	resp, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Authors)

	// Unfollowing an author who was never followed succeeds without any
	// counter change.
	_, err = domain.Unfollow(ctx, &model.UnfollowRequest{AuthorName: testutil.User3.Name})
	require.NoError(t, err)

	user3, err := userRepo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, 0, user3.Followers)
}
