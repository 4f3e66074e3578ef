package models

import (
	"time"
)

// User is a login account. Each user owns exactly one Member profile;
// admin capability is carried by the role.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Username       string     `gorm:"size:255;not null;unique"`
	HashedPassword []byte     `gorm:"not null"`
	Member         *Member    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RoleID         *uint      `gorm:"index"`
	Role           Role       `gorm:"foreignKey:RoleID;references:ID"`
}

// IsAdmin reports whether the loaded role grants admin capability.
func (u *User) IsAdmin() bool {
	return u.Role.Name == RoleAdministrator
}
