package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expense_tracker/internal/db"
	"expense_tracker/internal/service"
	"expense_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "api-test-secret"

// APITestSuite drives the real router over an in-memory database
type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.BcryptCost = bcrypt.MinCost
}

func (s *APITestSuite) TearDownSuite() {
	utils.BcryptCost = bcrypt.DefaultCost
}

func (s *APITestSuite) SetupTest() {
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(s.T(), err)
	require.NoError(s.T(), db.Migrate(gdb))
	s.db = gdb

	tokens := utils.NewTokenService(testSecret)
	s.router = NewRouter(Dependencies{
		Accounts:    service.NewAccountService(db.NewUserStore(gdb), tokens),
		Expenses:    service.NewExpenseService(db.NewExpenseStore(gdb), nil),
		Tokens:      tokens,
		CORSOrigins: []string{"*"},
	})
}

func (s *APITestSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// do sends a JSON request and decodes the JSON response into out when non-nil
func (s *APITestSuite) do(method, path, token string, body any, out any) int {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

type authBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

type expenseBody struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (s *APITestSuite) register(name, email string) authBody {
	var res authBody
	code := s.do(http.MethodPost, "/api/user/register", "", gin.H{"name": name, "email": email, "password": "Secr3t!"}, &res)
	require.Equal(s.T(), http.StatusCreated, code)
	return res
}

func (s *APITestSuite) add(token string, body gin.H) expenseBody {
	var res struct {
		Message string      `json:"message"`
		Expense expenseBody `json:"expense"`
	}
	code := s.do(http.MethodPost, "/api/expenses/add", token, body, &res)
	require.Equal(s.T(), http.StatusCreated, code)
	assert.Equal(s.T(), "Expense Added", res.Message)
	return res.Expense
}

func coffeeBody() gin.H {
	return gin.H{"description": "Coffee", "amount": -150, "category": "Food", "paymentMethod": "Cash"}
}

func (s *APITestSuite) TestHealth() {
	var res map[string]string
	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/health", "", nil, &res))
	assert.Equal(s.T(), "ok", res["status"])
}

func (s *APITestSuite) TestRegister() {
	res := s.register("Alice", "alice@x.com")
	assert.Equal(s.T(), "User Registered", res.Message)
	assert.NotEmpty(s.T(), res.Token)
	assert.Equal(s.T(), "alice@x.com", res.User.Email)
	assert.Empty(s.T(), res.User.Password, "credential must never be serialized")

	var dup authBody
	code := s.do(http.MethodPost, "/api/user/register", "", gin.H{"name": "Eve", "email": "alice@x.com", "password": "another"}, &dup)
	assert.Equal(s.T(), http.StatusConflict, code)
	assert.Equal(s.T(), "Already Exist", dup.Message)
	assert.Empty(s.T(), dup.Token)
}

func (s *APITestSuite) TestRegisterValidation() {
	var res map[string]string
	code := s.do(http.MethodPost, "/api/user/register", "", gin.H{"name": "Alice", "password": "Secr3t!"}, &res)
	assert.Equal(s.T(), http.StatusBadRequest, code)
	assert.Equal(s.T(), "email", res["field"])

	code = s.do(http.MethodPost, "/api/user/register", "", gin.H{"name": "Alice", "email": "alice", "password": "Secr3t!"}, &res)
	assert.Equal(s.T(), http.StatusBadRequest, code)
	assert.Equal(s.T(), "email", res["field"])

	res = map[string]string{}
	code = s.do(http.MethodPost, "/api/user/register", "", gin.H{"name": "Alice", "email": "alice@x.com", "password": strings.Repeat("a", 73)}, &res)
	assert.Equal(s.T(), http.StatusBadRequest, code)
	assert.Equal(s.T(), "password", res["field"])
}

func (s *APITestSuite) TestLogin() {
	reg := s.register("Alice", "alice@x.com")

	var ok authBody
	code := s.do(http.MethodPost, "/api/user/login", "", gin.H{"email": "alice@x.com", "password": "Secr3t!"}, &ok)
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), "Login successful", ok.Message)
	assert.Equal(s.T(), reg.User.ID, ok.User.ID)
	assert.NotEmpty(s.T(), ok.Token)

	var bad authBody
	code = s.do(http.MethodPost, "/api/user/login", "", gin.H{"email": "alice@x.com", "password": "nope!!"}, &bad)
	assert.Equal(s.T(), http.StatusUnauthorized, code)
	assert.Equal(s.T(), "Invalid password", bad.Message)
	assert.Empty(s.T(), bad.Token)

	var missing authBody
	code = s.do(http.MethodPost, "/api/user/login", "", gin.H{"email": "bob@x.com", "password": "Secr3t!"}, &missing)
	assert.Equal(s.T(), http.StatusNotFound, code)
	assert.Equal(s.T(), "User not found", missing.Message)
}

func (s *APITestSuite) TestMe() {
	reg := s.register("Alice", "alice@x.com")

	var me map[string]string
	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/user/me", reg.Token, nil, &me))
	assert.Equal(s.T(), "Alice", me["name"])
	assert.Equal(s.T(), reg.User.ID, me["id"])
	assert.NotContains(s.T(), me, "password")
}

func (s *APITestSuite) TestProtectedRoutesRequireToken() {
	reg := s.register("Alice", "alice@x.com")
	e := s.add(reg.Token, coffeeBody())

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		UserID: reg.User.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(s.T(), err)
	forged, err := utils.GenerateJWT(reg.User.ID, "not-the-server-secret")
	require.NoError(s.T(), err)

	routes := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/customer", nil},
		{http.MethodGet, "/api/user/me", nil},
		{http.MethodGet, "/api/expenses/summary", nil},
		{http.MethodPost, "/api/expenses/add", coffeeBody()},
		{http.MethodPut, "/api/expenses/" + e.ID, coffeeBody()},
		{http.MethodDelete, "/api/expenses/" + e.ID, nil},
	}
	for _, rt := range routes {
		assert.Equal(s.T(), http.StatusUnauthorized, s.do(rt.method, rt.path, "", rt.body, nil), "%s %s without token", rt.method, rt.path)
		assert.Equal(s.T(), http.StatusForbidden, s.do(rt.method, rt.path, expired, rt.body, nil), "%s %s expired", rt.method, rt.path)
		assert.Equal(s.T(), http.StatusForbidden, s.do(rt.method, rt.path, forged, rt.body, nil), "%s %s forged", rt.method, rt.path)
	}

	// Nothing above reached the ledger.
	var list []expenseBody
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/customer", reg.Token, nil, &list))
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "Coffee", list[0].Description)
}

func (s *APITestSuite) TestScenario() {
	reg := s.register("Alice", "alice@x.com")
	t1 := reg.Token

	e := s.add(t1, coffeeBody())
	assert.Equal(s.T(), -150.0, e.Amount)
	assert.Equal(s.T(), reg.User.ID, e.UserID)
	assert.WithinDuration(s.T(), time.Now(), e.CreatedAt, 5*time.Second)

	var list []expenseBody
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/customer", t1, nil, &list))
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), e.ID, list[0].ID)

	body := coffeeBody()
	body["amount"] = -200
	var updated expenseBody
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodPut, "/api/expenses/"+e.ID, t1, body, &updated))
	assert.Equal(s.T(), -200.0, updated.Amount)
	assert.Equal(s.T(), e.ID, updated.ID)

	var deleted map[string]string
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodDelete, "/api/expenses/"+e.ID, t1, nil, &deleted))
	assert.Equal(s.T(), "Deleted successfully", deleted["message"])

	list = nil
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/customer", t1, nil, &list))
	assert.NotNil(s.T(), list)
	assert.Empty(s.T(), list)

	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodDelete, "/api/expenses/"+e.ID, t1, nil, nil))
}

func (s *APITestSuite) TestOwnershipAcrossUsers() {
	alice := s.register("Alice", "alice@x.com")
	bob := s.register("Bob", "bob@x.com")
	e := s.add(alice.Token, coffeeBody())

	var bobs []expenseBody
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/customer", bob.Token, nil, &bobs))
	assert.Empty(s.T(), bobs)

	var res map[string]string
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodPut, "/api/expenses/"+e.ID, bob.Token, coffeeBody(), &res))
	assert.Equal(s.T(), "Expense not found", res["message"])
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodDelete, "/api/expenses/"+e.ID, bob.Token, nil, &res))

	// A nonexistent id looks exactly like someone else's.
	var unknown map[string]string
	assert.Equal(s.T(), http.StatusNotFound, s.do(http.MethodDelete, "/api/expenses/does-not-exist", bob.Token, nil, &unknown))
	assert.Equal(s.T(), res, unknown)

	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodDelete, "/api/expenses/"+e.ID, alice.Token, nil, nil))
}

func (s *APITestSuite) TestAddValidation() {
	reg := s.register("Alice", "alice@x.com")

	tests := []struct {
		name  string
		body  gin.H
		field string
	}{
		{"missing amount", gin.H{"description": "x", "category": "Food", "paymentMethod": "Cash"}, "amount"},
		{"missing category", gin.H{"description": "x", "amount": -1, "paymentMethod": "Cash"}, "category"},
		{"missing payment method", gin.H{"description": "x", "amount": -1, "category": "Food"}, "paymentMethod"},
		{"missing description", gin.H{"amount": -1, "category": "Food", "paymentMethod": "Cash"}, "description"},
		{"unknown category", gin.H{"description": "x", "amount": -1, "category": "Pets", "paymentMethod": "Cash"}, "category"},
		{"unknown payment method", gin.H{"description": "x", "amount": -1, "category": "Food", "paymentMethod": "Bitcoin"}, "paymentMethod"},
		{"zero amount", gin.H{"description": "x", "amount": 0, "category": "Food", "paymentMethod": "Cash"}, "amount"},
	}
	for _, tt := range tests {
		var res map[string]string
		code := s.do(http.MethodPost, "/api/expenses/add", reg.Token, tt.body, &res)
		assert.Equal(s.T(), http.StatusBadRequest, code, tt.name)
		assert.Equal(s.T(), tt.field, res["field"], tt.name)
	}

	var list []expenseBody
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/customer", reg.Token, nil, &list))
	assert.Empty(s.T(), list)
}

func (s *APITestSuite) TestAddAcceptsLegacyDescriptionField() {
	reg := s.register("Alice", "alice@x.com")
	e := s.add(reg.Token, gin.H{"discription": "Salary", "amount": 5000, "category": "Others", "paymentMethod": "Bank-Transfer"})
	assert.Equal(s.T(), "Salary", e.Description)
	assert.Equal(s.T(), 5000.0, e.Amount)
}

func (s *APITestSuite) TestSummary() {
	reg := s.register("Alice", "alice@x.com")
	s.add(reg.Token, gin.H{"description": "Salary", "amount": 1000, "category": "Others", "paymentMethod": "Bank-Transfer"})
	s.add(reg.Token, coffeeBody())
	s.add(reg.Token, gin.H{"description": "Bus", "amount": -50, "category": "Travel", "paymentMethod": "Credit Card"})

	var sum service.Summary
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/expenses/summary", reg.Token, nil, &sum))
	assert.Equal(s.T(), 1000.0, sum.TotalIncome)
	assert.Equal(s.T(), 200.0, sum.TotalExpenses)
	assert.Equal(s.T(), 800.0, sum.Balance)
	assert.Equal(s.T(), map[string]float64{"Food": 150, "Travel": 50}, sum.ByCategory)

	sum = service.Summary{}
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/expenses/summary?category=Travel", reg.Token, nil, &sum))
	assert.Equal(s.T(), map[string]float64{"Travel": 50}, sum.ByCategory)

	sum = service.Summary{}
	require.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/api/expenses/summary?to=2000-01-01", reg.Token, nil, &sum))
	assert.Empty(s.T(), sum.ByCategory)
	assert.Equal(s.T(), 200.0, sum.TotalExpenses)

	var res map[string]string
	assert.Equal(s.T(), http.StatusBadRequest, s.do(http.MethodGet, "/api/expenses/summary?from=yesterday", reg.Token, nil, &res))
	assert.Equal(s.T(), "from", res["field"])
}

func (s *APITestSuite) TestMalformedBody() {
	reg := s.register("Alice", "alice@x.com")
	req := httptest.NewRequest(http.MethodPost, "/api/expenses/add", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
