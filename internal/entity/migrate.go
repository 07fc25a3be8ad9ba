package entity

import (
	"context"

	"github.com/inkpost/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	)
}
