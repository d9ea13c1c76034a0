package entity

type Book struct {
	Base
	Title        string
	Author       string
	CoverPicture string
	TotalPages   int
	Genres       Array[string] `gorm:"type:text"`

	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}
