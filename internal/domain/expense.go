package domain

import (
	"slices"  // Set membership
	"strings" // Blank checks
	"time"    // Timestamps

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// Categories accepted for an expense
var Categories = []string{"Food", "Travel", "Shopping", "Bills", "Others"}

// PaymentMethods accepted for an expense
var PaymentMethods = []string{"Cash", "Credit Card", "UPI", "Bank-Transfer"}

// Expense Model. A positive amount is income, a negative amount is spending.
type Expense struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`          // Primary key (UUID)
	UserID        string    `gorm:"index;size:36;not null" json:"userId"`  // Owning user
	Description   string    `gorm:"not null" json:"description"`           // Free text
	Amount        float64   `gorm:"not null" json:"amount"`                // Signed amount
	Category      string    `gorm:"size:32;not null" json:"category"`      // One of Categories
	PaymentMethod string    `gorm:"size:32;not null" json:"paymentMethod"` // One of PaymentMethods
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`       // Creation time
}

// BeforeCreate assigns a UUID when the caller did not set one
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// IsIncome reports whether the record is a credit
func (e Expense) IsIncome() bool {
	return e.Amount > 0
}

// ExpenseInput carries the four caller-editable fields of an expense
type ExpenseInput struct {
	Description   string
	Amount        float64
	Category      string
	PaymentMethod string
}

// Validate checks that every field is present and that category and payment
// method belong to their fixed sets.
func (in ExpenseInput) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	if in.Amount == 0 {
		return &ValidationError{Field: "amount", Message: "amount must be non-zero"}
	}
	if !slices.Contains(Categories, in.Category) {
		return &ValidationError{Field: "category", Message: "category must be one of " + strings.Join(Categories, ", ")}
	}
	if !slices.Contains(PaymentMethods, in.PaymentMethod) {
		return &ValidationError{Field: "paymentMethod", Message: "paymentMethod must be one of " + strings.Join(PaymentMethods, ", ")}
	}
	return nil
}
