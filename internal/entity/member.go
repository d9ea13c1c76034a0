package entity

import (
	"time"

	"gorm.io/gorm"
)

// Member is one user's membership in one community, with the running
// counters community leaderboards rank by.
type Member struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CommunityID string    `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	TotalPages    int
	BooksFinished int
}
