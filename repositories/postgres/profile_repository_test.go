package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridelab/stride-api/repositories"
	"github.com/stridelab/stride-api/services/coercion"
	"go.uber.org/zap"
)

var profileColumnList = []string{
	"id", "owner_id", "name", "bio", "latitude", "longitude",
	"interests", "preferences", "verified", "created_at", "updated_at",
}

func profileRow(id, ownerID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(profileColumnList).AddRow(
		id, ownerID, "Ada", "runner", 51.5, -0.1,
		[]byte(`{running,cycling}`), []byte(`{"units":"metric"}`), true, now, now,
	)
}

func TestProfileGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db, zap.NewNop())

	id, ownerID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, owner_id, name, bio, latitude, longitude, interests, preferences, verified, created_at, updated_at FROM profiles WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(profileRow(id, ownerID))

	profile, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.Equal(t, "Ada", *profile.Name)
	assert.Equal(t, []string{"running", "cycling"}, profile.Interests)
	require.NotNil(t, profile.Verified)
	assert.True(t, *profile.Verified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db, zap.NewNop())

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM profiles WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumnList))

	profile, err := repo.GetByID(context.Background(), id)
	assert.Nil(t, profile)
	assert.Error(t, err)
}

func TestProfileGetByIDPreservesStoredNulls(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db, zap.NewNop())

	id, ownerID := uuid.New(), uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM profiles WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumnList).AddRow(
			id, ownerID, nil, nil, nil, nil, nil, nil, nil, now, now,
		))

	profile, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, profile.Name)
	assert.Nil(t, profile.Latitude)
	assert.Nil(t, profile.Interests)
	assert.Nil(t, profile.Preferences)
	assert.Nil(t, profile.Verified)
}

func TestUpdateOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db, zap.NewNop())

	id, ownerID := uuid.New(), uuid.New()
	fields := &coercion.FieldSet{Fields: []coercion.Field{
		{Column: "name", Kind: coercion.KindText, Value: "Ada"},
		{Column: "latitude", Kind: coercion.KindNumber, Value: 51.5},
	}}

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE profiles SET name = $1, latitude = $2, updated_at = CURRENT_TIMESTAMP `+
			`WHERE id = $3 AND owner_id = $4 `+
			`RETURNING id, owner_id, name, bio, latitude, longitude, interests, preferences, verified, created_at, updated_at`)).
		WithArgs("Ada", 51.5, id, ownerID).
		WillReturnRows(profileRow(id, ownerID))

	profile, err := repo.UpdateOwned(context.Background(), id, ownerID, fields)
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOwnedZeroRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db, zap.NewNop())

	id, ownerID := uuid.New(), uuid.New()
	mock.ExpectQuery(`UPDATE profiles SET .+ WHERE id = .+ AND owner_id = .+ RETURNING`).
		WithArgs("Ada", id, ownerID).
		WillReturnRows(sqlmock.NewRows(profileColumnList))

	_, err := repo.UpdateOwned(context.Background(), id, ownerID, &coercion.FieldSet{Fields: []coercion.Field{
		{Column: "name", Kind: coercion.KindText, Value: "Ada"},
	}})
	// The sentinel, not a wrapped scan error: callers branch on it.
	assert.ErrorIs(t, err, repositories.ErrNoRowsUpdated)
}

func TestUpdateOwnedNullAndArrayArguments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db, zap.NewNop())

	id, ownerID := uuid.New(), uuid.New()
	fields := &coercion.FieldSet{Fields: []coercion.Field{
		{Column: "bio", Kind: coercion.KindText, Value: nil},
		{Column: "interests", Kind: coercion.KindTextArray, Value: []string{"running"}},
	}}

	mock.ExpectQuery(`UPDATE profiles SET bio = \$1, interests = \$2, updated_at = CURRENT_TIMESTAMP`).
		WithArgs(nil, sqlmock.AnyArg(), id, ownerID).
		WillReturnRows(profileRow(id, ownerID))

	_, err := repo.UpdateOwned(context.Background(), id, ownerID, fields)
	require.NoError(t, err)
}

func TestProfileExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db, zap.NewNop())

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM profiles WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM profiles WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err = repo.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, exists)
}
