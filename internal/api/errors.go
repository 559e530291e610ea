package api

import (
	"errors"                          // Error matching
	"expense_tracker/internal/domain" // Domain errors
	"net/http"                        // HTTP status codes

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Binding validation errors
	"github.com/sirupsen/logrus"             // Logging library
)

// messages overrides the client-facing text for expected outcomes
type messages struct {
	notFound string
}

// respondError maps a service error to a status code and JSON body.
// Infrastructure errors are logged and reported without detail.
func respondError(c *gin.Context, err error, msgs messages) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message, "field": verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgs.notFound})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "Already Exist"})
	case errors.Is(err, domain.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token missing"})
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err.Error(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}

// respondBindError reports a request body that failed to decode or bind,
// naming the first offending field when the validator reports one.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		c.JSON(http.StatusBadRequest, gin.H{"message": field + " is required", "field": field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
}
