package entity

import "time"

// ReadingLog is one recorded progress update: the number of pages read
// since the previous recorded point, not a cumulative position.
type ReadingLog struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	UserBookID string
	UserBook   UserBook `gorm:"foreignKey:UserBookID"`

	PagesRead  int
	RecordedAt time.Time `gorm:"index"`
}
