package domain

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/internal/model"
	"github.com/inkpost/backend/internal/repository"
	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) *authDomain {
	return &authDomain{userRepo: userRepo}
}

var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if !userNamePattern.MatchString(req.Name) {
		return nil, errorx.New(errorx.BadRequest,
			"Username must be 3-32 characters of letters, digits, or underscores")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	_, err := d.userRepo.GetByName(ctx, req.Name)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.AlreadyExists, "Duplicated username")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash the password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Name:           req.Name,
		HashedPassword: string(hashed),
		Role:           entity.UserRole,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{User: model.ConvertUser(user)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by name: %v", err)
		return nil, errorx.Unknown
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Name: user.Name,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        model.ConvertUser(user),
	}, nil
}
