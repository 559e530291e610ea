package db

import (
	"context"                         // Request-scoped cancellation
	"expense_tracker/internal/domain" // Importing domain models
	"fmt"                             // Error wrapping

	"gorm.io/gorm" // GORM ORM library
)

// ExpenseStore persists expense records. Every read and write except Create
// is filtered by the owning user id.
type ExpenseStore struct {
	db *gorm.DB
}

// NewExpenseStore returns an ExpenseStore backed by db
func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// Create persists e. ID and CreatedAt are filled in when empty.
func (s *ExpenseStore) Create(ctx context.Context, e *domain.Expense) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// ListByOwner returns every expense owned by userID, oldest first
func (s *ExpenseStore) ListByOwner(ctx context.Context, userID string) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// FindOwned returns the expense matching both id and owner
func (s *ExpenseStore) FindOwned(ctx context.Context, id, userID string) (*domain.Expense, error) {
	var e domain.Expense
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error; err != nil {
		return nil, notFound(err, "find expense")
	}
	return &e, nil
}

// UpdateOwned replaces the four editable fields of the expense matching both
// id and owner. A missing id and a foreign owner both yield domain.ErrNotFound.
func (s *ExpenseStore) UpdateOwned(ctx context.Context, id, userID string, in domain.ExpenseInput) (*domain.Expense, error) {
	var updated domain.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&updated).Error; err != nil {
			return notFound(err, "find expense")
		}
		updated.Description = in.Description
		updated.Amount = in.Amount
		updated.Category = in.Category
		updated.PaymentMethod = in.PaymentMethod
		// Select pins the column list so owner and timestamp stay untouched
		return tx.Model(&updated).
			Select("description", "amount", "category", "payment_method").
			Updates(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOwned permanently removes the expense matching both id and owner
func (s *ExpenseStore) DeleteOwned(ctx context.Context, id, userID string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Expense{})
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
