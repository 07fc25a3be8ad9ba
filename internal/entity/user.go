package entity

type User struct {
	Base
	Name           string `gorm:"unique;not null"`
	HashedPassword string
	Role           string `gorm:"default:USER"`

	// Followers counts incoming follow edges. It is maintained in the same
	// transaction that creates or deletes the edge.
	Followers int
}

const (
	AdminRole = "ADMIN"
	UserRole  = "USER"
)
