package entity

import "time"

// Follow is a directed edge recording that UserID follows AuthorID. The
// composite primary key makes the pair unique at the store level, so
// concurrent duplicate follow requests collapse into a single edge.
type Follow struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	AuthorID string `gorm:"primaryKey"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
