package models

import "time"

// Upload represents an uploaded receipt image for an expense. Failed OCR
// runs are recorded on the row instead of deleting it so an admin can
// review them later.
type Upload struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FileName    string   `gorm:"size:255;not null"`
	StorePath   string   `gorm:"column:store_path;size:512"` // public relative path (e.g. public/expenses/xxx.jpg)
	ContentType string   `gorm:"size:128"`
	ExpenseID   *uint    `gorm:"index"` // FK to expenses.id (nullable until the expense is saved)
	Expense     *Expense `gorm:"foreignKey:ExpenseID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	// Suggested amount extracted by OCR, in kuruş. Zero when nothing was
	// detected.
	SuggestedAmount int64
	Failed          bool   `gorm:"default:false;index"`
	FailedReason    string `gorm:"size:255"`
}
