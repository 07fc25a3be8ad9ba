package main

import (
	"context"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gorilla/sessions"
	"github.com/inkpost/backend/config"
	"github.com/inkpost/backend/internal/domain"
	"github.com/inkpost/backend/internal/middleware"
	"github.com/inkpost/backend/internal/model"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/crypto"
	"github.com/inkpost/backend/pkg/jwt"
	"github.com/inkpost/backend/pkg/logger"
	"github.com/inkpost/backend/pkg/router"
	"github.com/inkpost/backend/pkg/storage"
	"github.com/inkpost/backend/pkg/xcontext"
	"github.com/inkpost/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func (s *srv) loadConfig(cctx *cli.Context) {
	cfg := config.Configs{
		Env: "local",
		Database: config.DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "inkpost",
			User:     "inkpost",
		},
		ApiServer: config.ServerConfigs{
			Host:           "localhost",
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Session: config.SessionConfigs{
			Name: "session",
		},
		File: config.FileConfigs{
			MaxSize: 2 << 20,
		},
		Feed: config.FeedConfigs{
			PageSize:     10,
			FrontPageTTL: 20 * time.Second,
		},
		Redis: config.RedisConfigs{
			Addr: "localhost:6379",
		},
	}

	path := cctx.String("config")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			panic(err)
		}
	}

	// Secrets come from the environment, never from the config file.
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Session.Secret = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}

	// Local runs get ephemeral secrets. Tokens and sessions stop being valid
	// across restarts, which is acceptable there.
	if cfg.Env == "local" {
		if cfg.Auth.TokenSecret == "" {
			cfg.Auth.TokenSecret = mustRandomSecret()
		}
		if cfg.Session.Secret == "" {
			cfg.Session.Secret = mustRandomSecret()
		}
	}

	s.configs = cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func mustRandomSecret() string {
	secret, err := crypto.GenerateRandomString()
	if err != nil {
		panic(err)
	}

	return secret
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadEndpoint() {
	tokenEngine := jwt.NewEngine[model.AccessToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.AccessToken.Expiration)
	s.ctx = xcontext.WithTokenEngine(s.ctx, tokenEngine)

	sessionStore := sessions.NewCookieStore([]byte(s.configs.Session.Secret))
	s.ctx = xcontext.WithSessionStore(s.ctx, sessionStore)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.groupRepo = repository.NewGroupRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.followRepo = repository.NewFollowRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.groupDomain = domain.NewGroupDomain(s.groupRepo)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.userRepo, s.groupRepo, s.commentRepo, s.followRepo,
		s.redisClient, s.storage)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.postRepo, s.userRepo)
	s.followDomain = domain.NewFollowDomain(s.followRepo, s.userRepo)
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetAccessToken())
	authRouter.After(middleware.HandleSaveSession())
	{
		router.POST(authRouter, "/auth/register", s.authDomain.Register)
		router.POST(authRouter, "/auth/login", s.authDomain.Login)
	}

	// These following APIs need authentication with an access token.
	needAuthRouter := s.router.Branch()
	needAuthRouter.Before(middleware.NewAuthVerifier().WithAccessToken().Middleware())
	{
		// Group API
		router.POST(needAuthRouter, "/createGroup", s.groupDomain.Create)

		// Post API
		router.POST(needAuthRouter, "/createPost", s.postDomain.Create)
		router.POST(needAuthRouter, "/updatePostByID", s.postDomain.UpdateByID)
		router.POST(needAuthRouter, "/deletePostByID", s.postDomain.DeleteByID)
		router.POST(needAuthRouter, "/uploadPostImage", s.postDomain.UploadImage)
		router.GET(needAuthRouter, "/getFollowingPosts", s.postDomain.GetFollowingPosts)

		// Comment API
		router.POST(needAuthRouter, "/addComment", s.commentDomain.AddComment)

		// Follow API
		router.POST(needAuthRouter, "/follow", s.followDomain.Follow)
		router.POST(needAuthRouter, "/unfollow", s.followDomain.Unfollow)
		router.GET(needAuthRouter, "/getFollowing", s.followDomain.GetFollowing)
	}

	// Public APIs. The token is still resolved when present, so responses
	// can be personalized for signed-in users.
	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.NewAuthVerifier().WithAccessToken().WithOptional().Middleware())
	{
		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
		router.GET(publicRouter, "/getGroups", s.groupDomain.GetList)
		router.GET(publicRouter, "/getGroup", s.groupDomain.Get)
		router.GET(publicRouter, "/getPosts", s.postDomain.GetList)
		router.GET(publicRouter, "/getGroupPosts", s.postDomain.GetGroupPosts)
		router.GET(publicRouter, "/getUserPosts", s.postDomain.GetUserPosts)
		router.GET(publicRouter, "/getPost", s.postDomain.Get)
		router.GET(publicRouter, "/getComments", s.commentDomain.GetComments)
	}
}
