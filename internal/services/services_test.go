package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/cortexai/cortex-api/internal/auth"
	"github.com/cortexai/cortex-api/internal/database"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, dialect, err := database.New("sqlite:///" + filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, dialect))
	return db
}

func newAuthService(t *testing.T, db *sql.DB) (*AuthService, *UserService) {
	t.Helper()
	users := NewUserService(db)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tokens, bcrypt.MinCost), users
}
