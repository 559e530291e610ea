package service

import (
	"context"
	"testing"
	"time"

	"expense_tracker/internal/db"
	"expense_tracker/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "service-test-secret"

type fixture struct {
	db       *gorm.DB
	tokens   *utils.TokenService
	accounts *AccountService
	expenses *ExpenseService
	store    *db.ExpenseStore
	redis    *miniredis.Miniredis
	ctx      context.Context
}

// newFixture wires the services over an in-memory database. withCache adds a
// miniredis-backed list cache.
func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()
	utils.BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { utils.BcryptCost = bcrypt.DefaultCost })

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{db: gdb, tokens: utils.NewTokenService(testSecret), ctx: context.Background()}
	f.store = db.NewExpenseStore(gdb)

	var cache *utils.Cache
	if withCache {
		f.redis = miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: f.redis.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		cache = utils.NewCache(rdb, time.Minute)
	}

	f.accounts = NewAccountService(db.NewUserStore(gdb), f.tokens)
	f.expenses = NewExpenseService(f.store, cache)
	return f
}

// register creates a user and returns its id
func (f *fixture) register(t *testing.T, name, email string) string {
	t.Helper()
	res, err := f.accounts.Register(f.ctx, name, email, "Secr3t!")
	require.NoError(t, err)
	return res.User.ID
}
