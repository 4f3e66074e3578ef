package models

import "time"

// Member represents a club member's profile (one-to-one with User).
// Admin capability comes from the linked user's role, not from the member
// row itself; the JSON surface exposes it as is_admin.
type Member struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"-"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"-"` // one-to-one relation
	User      *User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FullName  string     `gorm:"size:255;not null" json:"full_name"`
	Payments  []Payment  `gorm:"foreignKey:MemberID" json:"-"`
	// IsAdmin is resolved from the user's role when the member is loaded
	// for API responses. Not a column.
	IsAdmin bool `gorm:"-" json:"is_admin"`
}
