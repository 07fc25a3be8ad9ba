package testutil

import (
	"context"
	"database/sql"

	"github.com/inkpost/backend/internal/entity"
	"github.com/inkpost/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "leo",
		Role: entity.UserRole,
	}

	User2 = entity.User{
		Base: entity.Base{ID: "user2"},
		Name: "anna",
		Role: entity.UserRole,
	}

	User3 = entity.User{
		Base: entity.Base{ID: "user3"},
		Name: "pavel",
		Role: entity.UserRole,
	}

	Group1 = entity.Group{
		Base:        entity.Base{ID: "group1"},
		Title:       "Street Photography",
		Slug:        "street-photography",
		Description: "Candid shots from around the city",
		CreatedBy:   sql.NullString{Valid: true, String: User1.ID},
	}

	Group2 = entity.Group{
		Base:        entity.Base{ID: "group2"},
		Title:       "Travel Notes",
		Slug:        "travel-notes",
		Description: "Where to go and what to skip",
		CreatedBy:   sql.NullString{Valid: true, String: User2.ID},
	}

	Post1 = entity.Post{
		Base:     entity.Base{ID: "post1"},
		Text:     "Morning light on the old bridge",
		AuthorID: User1.ID,
		GroupID:  sql.NullString{Valid: true, String: Group1.ID},
	}

	Post2 = entity.Post{
		Base:     entity.Base{ID: "post2"},
		Text:     "A short note without any group",
		AuthorID: User1.ID,
	}

	Post3 = entity.Post{
		Base:     entity.Base{ID: "post3"},
		Text:     "Three days in the mountains",
		AuthorID: User2.ID,
		GroupID:  sql.NullString{Valid: true, String: Group2.ID},
	}

	Comment1 = entity.Comment{
		Base:     entity.Base{ID: "comment1"},
		Text:     "Great shot!",
		AuthorID: User2.ID,
		PostID:   sql.NullString{Valid: true, String: Post1.ID},
	}
)

// CreateFixtures inserts the sample users, groups, posts, and a comment into
// the mock database. Insertion order respects foreign keys.
func CreateFixtures(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, User3} {
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}

	groupRepo := repository.NewGroupRepository()
	for _, group := range []entity.Group{Group1, Group2} {
		if err := groupRepo.Create(ctx, &group); err != nil {
			panic(err)
		}
	}

	postRepo := repository.NewPostRepository()
	for _, post := range []entity.Post{Post1, Post2, Post3} {
		if err := postRepo.Create(ctx, &post); err != nil {
			panic(err)
		}
	}

	commentRepo := repository.NewCommentRepository()
	comment := Comment1
	if err := commentRepo.Create(ctx, &comment); err != nil {
		panic(err)
	}
}
