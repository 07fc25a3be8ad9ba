package entity

import "database/sql"

type Comment struct {
	Base
	Text string `gorm:"type:text;not null"`

	AuthorID string `gorm:"not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	// PostID is cleared, not cascaded, when the post is deleted.
	PostID sql.NullString `gorm:"index"`
	Post   Post           `gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL"`
}
