package models

import "time"

// Payment represents one dues contribution credited to a member for a
// given period. PaymentMonth is always normalized to the first day of the
// month; several payments may exist for the same member and month
// (installments) and the period total is their sum.
type Payment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
	MemberID     uint      `gorm:"index;not null" json:"user_id"`
	Member       *Member   `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"member,omitempty"`
	Amount       int64     `gorm:"not null" json:"amount"` // kuruş
	PaymentDate  time.Time `gorm:"not null;index" json:"payment_date"`
	PaymentMonth time.Time `gorm:"not null;index" json:"payment_month"`
	CreatedByID  uint      `gorm:"index" json:"created_by"`
}
