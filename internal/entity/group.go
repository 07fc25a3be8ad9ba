package entity

import "database/sql"

type Group struct {
	Base
	Title       string `gorm:"not null"`
	Slug        string `gorm:"unique;size:100"`
	Description string `gorm:"type:text"`

	CreatedBy     sql.NullString
	CreatedByUser User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
}
