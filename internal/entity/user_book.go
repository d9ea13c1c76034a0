package entity

import (
	"database/sql"

	"github.com/shelfmark/backend/pkg/enum"
)

type UserBookStatus string

var (
	UserBookWant     = enum.New(UserBookStatus("want"))
	UserBookReading  = enum.New(UserBookStatus("reading"))
	UserBookFinished = enum.New(UserBookStatus("finished"))
)

// UserBook is one book on one user's shelf. The title is denormalized
// from the catalog so history keeps displaying even if the catalog
// entry is later edited or removed.
type UserBook struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	BookID string
	Book   Book `gorm:"foreignKey:BookID"`

	Title       string
	Status      UserBookStatus
	CurrentPage int
	CompletedAt sql.NullTime
}
