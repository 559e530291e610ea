package service

import (
	"context"                         // Request-scoped cancellation
	"expense_tracker/internal/domain" // Domain models and errors
	"expense_tracker/internal/utils"  // Cache
	"time"                            // Timestamps

	"github.com/google/uuid"     // Identifier parsing
	"github.com/sirupsen/logrus" // Logging library
)

// ExpenseRepository is the ledger store used by ExpenseService
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	ListByOwner(ctx context.Context, userID string) ([]domain.Expense, error)
	UpdateOwned(ctx context.Context, id, userID string, in domain.ExpenseInput) (*domain.Expense, error)
	DeleteOwned(ctx context.Context, id, userID string) error
}

// ExpenseService implements the ownership-scoped expense use-cases. Every
// method takes the caller's verified user id and never touches records owned
// by anyone else.
type ExpenseService struct {
	store ExpenseRepository
	cache *utils.Cache
	now   func() time.Time
}

// NewExpenseService builds the service. cache may be nil.
func NewExpenseService(store ExpenseRepository, cache *utils.Cache) *ExpenseService {
	return &ExpenseService{store: store, cache: cache, now: time.Now}
}

// Add validates in and records it for userID
func (s *ExpenseService) Add(ctx context.Context, userID string, in domain.ExpenseInput) (*domain.Expense, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	e := &domain.Expense{
		UserID:        userID,
		Description:   in.Description,
		Amount:        in.Amount,
		Category:      in.Category,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     s.now(),
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"expense_id": e.ID,
		"amount":     e.Amount,
	}).Info("Expense added")
	return e, nil
}

// List returns every expense owned by userID
func (s *ExpenseService) List(ctx context.Context, userID string) ([]domain.Expense, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	key := utils.ExpenseListKey(userID)
	var cached []domain.Expense
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Expense cache read failed")
	} else if found {
		return cached, nil
	}

	expenses, err := s.store.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, expenses); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Expense cache write failed")
	}
	return expenses, nil
}

// Update replaces the editable fields of the caller's expense id. An unknown
// id and another user's id are both domain.ErrNotFound.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, in domain.ExpenseInput) (*domain.Expense, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	updated, err := s.store.UpdateOwned(ctx, id, userID, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	logrus.WithFields(logrus.Fields{"user_id": userID, "expense_id": id}).Info("Expense updated")
	return updated, nil
}

// Delete permanently removes the caller's expense id
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if !validID(id) {
		return domain.ErrNotFound
	}
	if err := s.store.DeleteOwned(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	logrus.WithFields(logrus.Fields{"user_id": userID, "expense_id": id}).Info("Expense deleted")
	return nil
}

// Summary aggregates the caller's expenses for the dashboard
func (s *ExpenseService) Summary(ctx context.Context, userID string, filter SummaryFilter) (*Summary, error) {
	expenses, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(expenses, filter)
	return &summary, nil
}

func (s *ExpenseService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, utils.ExpenseListKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Expense cache invalidation failed")
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
