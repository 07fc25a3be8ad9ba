package model

import (
	"time"

	"github.com/inkpost/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		Name:      user.Name,
		Role:      user.Role,
		Followers: user.Followers,
		CreatedAt: user.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertGroup(group *entity.Group) Group {
	if group == nil {
		return Group{}
	}

	return Group{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
		CreatedAt:   group.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPost(post *entity.Post, author *entity.User, group *entity.Group) Post {
	if post == nil {
		return Post{}
	}

	result := Post{
		ID:        post.ID,
		Text:      post.Text,
		Author:    ConvertUser(author),
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt.Format(DefaultTimeLayout),
	}

	if group != nil {
		clientGroup := ConvertGroup(group)
		result.Group = &clientGroup
	}

	return result
}

func ConvertComment(comment *entity.Comment, author *entity.User) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		Text:      comment.Text,
		Author:    ConvertUser(author),
		PostID:    comment.PostID.String,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
	}
}
