package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/repositories"
	"github.com/stridelab/stride-api/services/coercion"
	"go.uber.org/zap"
)

const profileColumns = `id, owner_id, name, bio, latitude, longitude, interests, preferences, verified, created_at, updated_at`

// ProfileRepository implements the repositories.ProfileRepository interface
type ProfileRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB, logger *zap.Logger) repositories.ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a profile by id
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = $1`, profileColumns)

	executor := GetExecutor(ctx, r.db)
	profile, err := scanProfile(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpdateOwned applies the coerced field set. The ownership predicate lives in
// the same UPDATE that performs the write, so ownership verification and
// mutation cannot race, and row-level locking serializes concurrent updates
// to the same profile.
func (r *ProfileRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, fields *coercion.FieldSet) (*models.Profile, error) {
	setParts := make([]string, 0, len(fields.Fields)+1)
	args := make([]interface{}, 0, len(fields.Fields)+2)

	for _, f := range fields.Fields {
		args = append(args, driverValue(f))
		// Column names come from the static schema, never from the payload.
		setParts = append(setParts, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	setParts = append(setParts, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	idPos := len(args)
	args = append(args, ownerID)
	ownerPos := len(args)

	query := fmt.Sprintf(
		`UPDATE profiles SET %s WHERE id = $%d AND owner_id = $%d RETURNING %s`,
		strings.Join(setParts, ", "), idPos, ownerPos, profileColumns,
	)

	executor := GetExecutor(ctx, r.db)
	profile, err := scanProfile(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.ErrNoRowsUpdated
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	r.logger.Debug("profile updated",
		zap.String("id", id.String()),
		zap.Int("columns", len(fields.Fields)))
	return profile, nil
}

// Exists reports whether a profile row exists regardless of owner. Read-only
// probe used to tell a missing resource apart from an ownership mismatch
// after a zero-row UPDATE.
func (r *ProfileRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM profiles WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	var one int
	err := executor.QueryRowContext(ctx, query, id).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}
	return true, nil
}

// rowScanner abstracts *sql.Row for scanning
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProfile scans one profile row, preserving stored NULLs as nil pointers
// so the projection layer decides how to render them
func scanProfile(row rowScanner) (*models.Profile, error) {
	profile := &models.Profile{}
	var preferences []byte
	var verified sql.NullBool

	err := row.Scan(
		&profile.ID,
		&profile.OwnerID,
		&profile.Name,
		&profile.Bio,
		&profile.Latitude,
		&profile.Longitude,
		pq.Array(&profile.Interests),
		&preferences,
		&verified,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if preferences != nil {
		profile.Preferences = preferences
	}
	if verified.Valid {
		profile.Verified = &verified.Bool
	}
	return profile, nil
}

// driverValue maps a coerced field value to a driver argument. Explicit NULL
// stays nil; json "null" is never stored as the literal string.
func driverValue(f coercion.Field) interface{} {
	if f.Value == nil {
		return nil
	}
	switch v := f.Value.(type) {
	case []string:
		return pq.Array(v)
	case json.RawMessage:
		return []byte(v)
	default:
		return v
	}
}
