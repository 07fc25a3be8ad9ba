package xcontext

import (
	"context"
	"testing"
	"time"

	"github.com/inkpost/backend/pkg/jwt"
	"github.com/stretchr/testify/require"
)

func Test_xcontext_TokenEngine(t *testing.T) {
	engine := jwt.NewEngine[jwt.AccessToken]("some-secret", time.Minute)
	ctx := WithTokenEngine(context.Background(), engine)

	token, err := TokenEngine(ctx).Generate("user1", jwt.AccessToken{ID: "user1", Name: "leo"})
	require.NoError(t, err)

	claims, err := TokenEngine(ctx).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", claims.ID)
	require.Equal(t, "leo", claims.Name)
}

func Test_xcontext_RequestUserID(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, RequestUserID(ctx))

	ctx = WithRequestUserID(ctx, "user1")
	require.Equal(t, "user1", RequestUserID(ctx))
}
