package models

import "time"

// Expense represents one club expenditure, optionally backed by a receipt
// image served from the public upload path.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
	Description string    `gorm:"size:512;not null" json:"description"`
	Amount      int64     `gorm:"not null" json:"amount"` // kuruş
	ExpenseDate time.Time `gorm:"not null;index" json:"expense_date"`
	ImageURL    *string   `gorm:"size:512" json:"image_url"`
	CreatedByID uint      `gorm:"index" json:"created_by"`
}
