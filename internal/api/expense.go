package api

import (
	"expense_tracker/internal/domain"     // Importing domain models
	"expense_tracker/internal/middleware" // Caller identity
	"expense_tracker/internal/service"    // Expense use-cases
	"net/http"                            // HTTP status codes
	"time"                                // Date filters

	"github.com/gin-gonic/gin" // Gin web framework
)

// ExpenseRequest is the body of add and update
type ExpenseRequest struct {
	Description   string   `json:"description"`                      // Free text
	Discription   string   `json:"discription"`                      // Legacy spelling, accepted on input only
	Amount        *float64 `json:"amount" binding:"required"`        // Signed amount, negative for spending
	Category      string   `json:"category" binding:"required"`      // One of domain.Categories
	PaymentMethod string   `json:"paymentMethod" binding:"required"` // One of domain.PaymentMethods
}

func (r ExpenseRequest) input() domain.ExpenseInput {
	desc := r.Description
	if desc == "" {
		desc = r.Discription
	}
	return domain.ExpenseInput{
		Description:   desc,
		Amount:        *r.Amount,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
	}
}

const expenseNotFound = "Expense not found"

// ListExpensesHandler returns every expense owned by the caller
func ListExpensesHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		list, err := expenses.List(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, messages{notFound: expenseNotFound})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// AddExpenseHandler records a new expense for the caller
func AddExpenseHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		var req ExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		expense, err := expenses.Add(c.Request.Context(), userID, req.input())
		if err != nil {
			respondError(c, err, messages{notFound: expenseNotFound})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Expense Added", "expense": expense})
	}
}

// UpdateExpenseHandler replaces the editable fields of one of the caller's expenses
func UpdateExpenseHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		var req ExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		updated, err := expenses.Update(c.Request.Context(), userID, c.Param("id"), req.input())
		if err != nil {
			respondError(c, err, messages{notFound: expenseNotFound})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteExpenseHandler permanently removes one of the caller's expenses
func DeleteExpenseHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		if err := expenses.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
			respondError(c, err, messages{notFound: expenseNotFound})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
	}
}

// SummaryHandler returns the dashboard totals for the caller. Optional query
// parameters category, from and to (YYYY-MM-DD) narrow the category breakdown.
func SummaryHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		filter := service.SummaryFilter{Category: c.Query("category")}
		for _, q := range []struct {
			name string
			dst  *time.Time
		}{{"from", &filter.From}, {"to", &filter.To}} {
			raw := c.Query(q.name)
			if raw == "" {
				continue
			}
			t, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				respondError(c, &domain.ValidationError{Field: q.name, Message: q.name + " must be a YYYY-MM-DD date"}, messages{})
				return
			}
			*q.dst = t
		}
		summary, err := expenses.Summary(c.Request.Context(), userID, filter)
		if err != nil {
			respondError(c, err, messages{notFound: expenseNotFound})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
