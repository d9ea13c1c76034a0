package entity

import (
	"context"

	"github.com/shelfmark/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&OAuth2{},
		&Book{},
		&UserBook{},
		&ReadingLog{},
		&Community{},
		&Member{},
	)
}
