package main

import (
	"context"
	"net/http"

	"github.com/inkpost/backend/config"
	"github.com/inkpost/backend/internal/domain"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/logger"
	"github.com/inkpost/backend/pkg/router"
	"github.com/inkpost/backend/pkg/storage"
	"github.com/inkpost/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
)

type srv struct {
	ctx context.Context
	app *cli.App

	configs config.Configs
	logger  logger.Logger

	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository

	authDomain    domain.AuthDomain
	userDomain    domain.UserDomain
	groupDomain   domain.GroupDomain
	postDomain    domain.PostDomain
	commentDomain domain.CommentDomain
	followDomain  domain.FollowDomain

	redisClient xredis.Client
	storage     storage.Storage

	router *router.Router
	server *http.Server
}
