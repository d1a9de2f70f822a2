package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cortexai/cortex-api/internal/common"
	"github.com/cortexai/cortex-api/internal/database"
	"github.com/cortexai/cortex-api/internal/models"
)

// OnboardingServiceProvider defines the interface for onboarding services.
type OnboardingServiceProvider interface {
	UpsertProfile(ctx context.Context, clientUserID, displayName string, age int) (models.OnboardingProfile, error)
	GetProfile(ctx context.Context, clientUserID string) (models.OnboardingProfile, error)
}

// OnboardingService stores onboarding profiles keyed by client_user_id.
type OnboardingService struct {
	db  *sql.DB
	now func() time.Time
}

// NewOnboardingService creates a new OnboardingService.
func NewOnboardingService(db *sql.DB) *OnboardingService {
	return &OnboardingService{db: db, now: time.Now}
}

const selectProfile = `
	SELECT id, client_user_id, display_name, age, created_at, updated_at
	FROM onboarding_profiles WHERE client_user_id = $1`

// The unique index on client_user_id makes this a single atomic
// insert-or-update, so concurrent first writes cannot create duplicates.
const upsertProfile = `
	INSERT INTO onboarding_profiles (client_user_id, display_name, age, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $4)
	ON CONFLICT (client_user_id) DO UPDATE SET
		display_name = excluded.display_name,
		age = excluded.age,
		updated_at = excluded.updated_at`

func scanProfile(row *sql.Row) (models.OnboardingProfile, error) {
	var p models.OnboardingProfile
	err := row.Scan(&p.ID, &p.ClientUserID, &p.DisplayName, &p.Age, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// UpsertProfile inserts the profile or overwrites display name and age of
// the existing one. The key itself is never changed.
func (s *OnboardingService) UpsertProfile(ctx context.Context, clientUserID, displayName string, age int) (models.OnboardingProfile, error) {
	if err := validateLength("client_user_id", clientUserID, MinClientUserIDLen, MaxClientUserIDLen); err != nil {
		return models.OnboardingProfile{}, err
	}
	if err := validateLength("display_name", displayName, 1, MaxDisplayNameLen); err != nil {
		return models.OnboardingProfile{}, err
	}
	if err := validateRange("age", age, MinAge, MaxAge); err != nil {
		return models.OnboardingProfile{}, err
	}

	var profile models.OnboardingProfile
	err := database.WithTx(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		now := s.now().UTC().Truncate(time.Microsecond)
		if _, err := tx.ExecContext(ctx, upsertProfile, clientUserID, displayName, age, now); err != nil {
			return err
		}
		var err error
		profile, err = scanProfile(tx.QueryRowContext(ctx, selectProfile, clientUserID))
		return err
	})
	if err != nil {
		return models.OnboardingProfile{}, fmt.Errorf("upsert onboarding profile %s: %w", clientUserID, err)
	}
	return profile, nil
}

// GetProfile retrieves a profile by its client-generated key.
func (s *OnboardingService) GetProfile(ctx context.Context, clientUserID string) (models.OnboardingProfile, error) {
	profile, err := scanProfile(s.db.QueryRowContext(ctx, selectProfile, clientUserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OnboardingProfile{}, common.Detail(common.ErrNotFound, "Onboarding profile not found")
		}
		return models.OnboardingProfile{}, fmt.Errorf("get onboarding profile %s: %w", clientUserID, err)
	}
	return profile, nil
}
