package entity

// OAuth2 links a provider account (google, discord) to a local user.
// A user may link several providers, but each provider account maps to
// at most one user.
type OAuth2 struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Service       string `gorm:"primaryKey"`
	ServiceUserID string `gorm:"unique"`
}

func (OAuth2) TableName() string {
	return "oauth2"
}
