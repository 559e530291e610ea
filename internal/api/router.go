package api

import (
	"expense_tracker/internal/middleware" // Custom package for middleware
	"expense_tracker/internal/service"    // Use-cases
	"net/http"                            // HTTP status codes
	"reflect"                             // Struct tag lookup
	"strings"                             // Tag parsing
	"sync"                                // One-time validator setup
	"time"                                // CORS max age

	"github.com/gin-contrib/cors"            // CORS middleware
	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Request binding
	"github.com/go-playground/validator/v10" // Validator engine
)

// Dependencies are the collaborators the router wires into handlers
type Dependencies struct {
	Accounts    *service.AccountService
	Expenses    *service.ExpenseService
	Tokens      middleware.TokenVerifier
	CORSOrigins []string
}

var registerTagName sync.Once

// NewRouter builds the gin engine with every route of the API
func NewRouter(deps Dependencies) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), corsMiddleware(deps.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes, these establish identity so they bypass the gateway
	r.POST("/api/user/register", RegisterHandler(deps.Accounts))
	r.POST("/api/user/login", LoginHandler(deps.Accounts))

	// Everything below requires a bearer token
	auth := middleware.JWTAuthMiddleware(deps.Tokens)
	r.GET("/api/user/me", auth, MeHandler(deps.Accounts))
	r.GET("/api/customer", auth, ListExpensesHandler(deps.Expenses))

	expenses := r.Group("/api/expenses", auth)
	expenses.GET("", ListExpensesHandler(deps.Expenses))
	expenses.GET("/summary", SummaryHandler(deps.Expenses))
	expenses.POST("/add", AddExpenseHandler(deps.Expenses))
	expenses.PUT("/:id", UpdateExpenseHandler(deps.Expenses))
	expenses.DELETE("/:id", DeleteExpenseHandler(deps.Expenses))

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// useJSONFieldNames makes validation errors report the JSON name of a field
func useJSONFieldNames() {
	registerTagName.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
