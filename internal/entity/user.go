package entity

import (
	"database/sql"

	"github.com/shelfmark/backend/pkg/enum"
)

const (
	SuperAdminRole = "SUPER_ADMIN"
	AdminRole      = "ADMIN"
	UserRole       = "USER"
)

var GlobalAdminRoles = []string{SuperAdminRole, AdminRole}

// WeekStart is the user's preferred first day of the week. It drives
// the pages-this-week rollup of the statistic engine.
type WeekStart string

var (
	WeekStartMonday = enum.New(WeekStart("monday"))
	WeekStartSunday = enum.New(WeekStart("sunday"))
)

type User struct {
	Base
	Name           string `gorm:"unique"`
	Email          string `gorm:"unique"`
	PasswordHash   sql.NullString
	Role           string `gorm:"default:USER"`
	ProfilePicture string

	// Reading preferences. Timezone is an IANA name; empty means the
	// account has no zone preference and day boundaries are UTC.
	Timezone  string
	WeekStart WeekStart `gorm:"default:monday"`
}
