package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cortexai/cortex-api/internal/common"
	"github.com/cortexai/cortex-api/internal/database"
	"github.com/cortexai/cortex-api/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// UserService provides persistence for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (models.User, error) {
	var user models.User
	err := scanner.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	return user, err
}

// GetUserByID retrieves a single user by their ID, including the password hash.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, email, password_hash, created_at FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %d: %w", id, common.ErrNotFound)
		}
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, email, password_hash, created_at FROM users WHERE email = $1", email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with email %s: %w", email, common.ErrNotFound)
		}
		return models.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// CreateUser stores a new user with an already hashed password. A store-level
// email collision is reported as common.ErrAlreadyExists.
func (s *UserService) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	var user models.User
	err := database.WithTx(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		row := tx.QueryRowContext(ctx,
			"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id",
			email, passwordHash)
		if err := row.Scan(&user.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.User{}, common.Detail(common.ErrAlreadyExists, "Email already registered")
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	user.Email = email
	return user, nil
}

// ListUsers returns every stored user. Any authenticated caller may list
// all accounts; there is no pagination.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, email, password_hash, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
