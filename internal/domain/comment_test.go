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

func newCommentDomainForTest() *commentDomain {
	return NewCommentDomain(
		repository.NewCommentRepository(),
		repository.NewPostRepository(),
		repository.NewUserRepository(),
	)
}

func Test_commentDomain_AddComment(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User3.ID)

	domain := newCommentDomainForTest()

	resp, err := domain.AddComment(ctx, &model.AddCommentRequest{
		PostID: testutil.Post1.ID,
		Text:   "Nice composition",
	})
	require.NoError(t, err)
	require.Equal(t, "Nice composition", resp.Comment.Text)
	require.Equal(t, testutil.User3.Name, resp.Comment.Author.Name)
	require.Equal(t, testutil.Post1.ID, resp.Comment.PostID)
}

func Test_commentDomain_AddComment_emptyText(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User3.ID)

	domain := newCommentDomainForTest()

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := domain.AddComment(ctx, &model.AddCommentRequest{
			PostID: testutil.Post1.ID,
			Text:   text,
		})
		require.Error(t, err)
		require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
	}

	// Nothing was stored for the rejected submissions.
	comments, err := domain.GetComments(ctx, &model.GetCommentsRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Len(t, comments.Comments, 1)
}

func Test_commentDomain_AddComment_unknownPost(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User3.ID)

	domain := newCommentDomainForTest()

	_, err := domain.AddComment(ctx, &model.AddCommentRequest{
		PostID: "no-such-post",
		Text:   "Hello?",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_commentDomain_GetComments_ordered(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtures(ctx)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User3.ID)

	domain := newCommentDomainForTest()

	for _, text := range []string{"first reply", "second reply"} {
		_, err := domain.AddComment(ctx, &model.AddCommentRequest{
			PostID: testutil.Post2.ID,
			Text:   text,
		})
		require.NoError(t, err)
	}

	resp, err := domain.GetComments(ctx, &model.GetCommentsRequest{PostID: testutil.Post2.ID})
	require.NoError(t, err)
	require.Len(t, resp.Comments, 2)
	require.Equal(t, "first reply", resp.Comments[0].Text)
	require.Equal(t, "second reply", resp.Comments[1].Text)
}
