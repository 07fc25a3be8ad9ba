package entity

import "database/sql"

// Post's CreatedAt is the publication timestamp. It is set once on insert
// and never updated.
type Post struct {
	Base
	Text string `gorm:"type:text;not null"`

	AuthorID string `gorm:"not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	GroupID sql.NullString `gorm:"index"`
	Group   Group          `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`

	ImageURL string
}
