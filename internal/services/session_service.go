package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cortexai/cortex-api/internal/database"
	"github.com/cortexai/cortex-api/internal/models"
)

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	CreateSession(ctx context.Context, userID int64, mood *string, durationSeconds int) (models.Session, error)
	ListSessions(ctx context.Context, userID int64) ([]models.Session, error)
}

// SessionService provides persistence for mood-tracking sessions.
type SessionService struct {
	db  *sql.DB
	now func() time.Time
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *sql.DB) *SessionService {
	return &SessionService{db: db, now: time.Now}
}

// CreateSession logs a session for the given user, starting now.
func (s *SessionService) CreateSession(ctx context.Context, userID int64, mood *string, durationSeconds int) (models.Session, error) {
	if durationSeconds < 0 {
		return models.Session{}, validationError("duration_seconds must be greater than or equal to 0")
	}
	if mood != nil {
		if err := validateLength("mood", *mood, 0, MaxMoodLength); err != nil {
			return models.Session{}, err
		}
	}

	session := models.Session{
		UserID:          userID,
		Mood:            mood,
		StartedAt:       s.now().UTC().Truncate(time.Microsecond),
		DurationSeconds: durationSeconds,
	}

	err := database.WithTx(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		row := tx.QueryRowContext(ctx,
			"INSERT INTO sessions (user_id, mood, started_at, duration_seconds) VALUES ($1, $2, $3, $4) RETURNING id",
			session.UserID, session.Mood, session.StartedAt, session.DurationSeconds)
		return row.Scan(&session.ID)
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("create session for user %d: %w", userID, err)
	}
	return session, nil
}

// ListSessions returns every session owned by the user in store order.
func (s *SessionService) ListSessions(ctx context.Context, userID int64) ([]models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, mood, started_at, duration_seconds FROM sessions WHERE user_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions for user %d: %w", userID, err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var session models.Session
		var mood sql.NullString
		if err := rows.Scan(&session.ID, &session.UserID, &mood, &session.StartedAt, &session.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if mood.Valid {
			session.Mood = &mood.String
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions for user %d: %w", userID, err)
	}
	return sessions, nil
}
