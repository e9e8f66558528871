package mutation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/repositories"
	"github.com/stridelab/stride-api/services"
	"github.com/stridelab/stride-api/services/coercion"
	"go.uber.org/zap"
)

// fakeTxManager runs the callback directly and records commit/rollback outcomes
type fakeTxManager struct {
	begun      int
	committed  int
	rolledBack int
}

type fakeTx struct {
	mgr *fakeTxManager
	ctx context.Context
}

func (m *fakeTxManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	m.begun++
	return &fakeTx{mgr: m, ctx: ctx}, nil
}

func (m *fakeTxManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	tx, _ := m.Begin(ctx)
	if err := fn(ctx, tx); err != nil {
		m.rolledBack++
		return err
	}
	m.committed++
	return nil
}

func (t *fakeTx) Commit() error            { return nil }
func (t *fakeTx) Rollback() error          { return nil }
func (t *fakeTx) Context() context.Context { return t.ctx }

// stubProfiles scripts repository outcomes per test
type stubProfiles struct {
	updateResult *models.Profile
	updateErr    error
	exists       bool
	existsErr    error
	existsCalled bool
}

func (s *stubProfiles) GetByID(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	return nil, errors.New("not implemented")
}

func (s *stubProfiles) UpdateOwned(_ context.Context, _, _ uuid.UUID, _ *coercion.FieldSet) (*models.Profile, error) {
	return s.updateResult, s.updateErr
}

func (s *stubProfiles) Exists(_ context.Context, _ uuid.UUID) (bool, error) {
	s.existsCalled = true
	return s.exists, s.existsErr
}

type stubFollows struct {
	insertErr  error
	cleanupErr error
	deleted    bool
	deleteErr  error
	inserted   *models.Follow
	cleanedUp  bool
}

func (s *stubFollows) Insert(_ context.Context, follow *models.Follow) error {
	s.inserted = follow
	return s.insertErr
}

func (s *stubFollows) DeletePendingRequest(_ context.Context, _, _ uuid.UUID) error {
	s.cleanedUp = true
	return s.cleanupErr
}

func (s *stubFollows) Delete(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return s.deleted, s.deleteErr
}

func nameFields() *coercion.FieldSet {
	return &coercion.FieldSet{Fields: []coercion.Field{
		{Column: "name", Kind: coercion.KindText, Value: "Ada"},
	}}
}

func TestUpdateProfileSuccess(t *testing.T) {
	txm := &fakeTxManager{}
	name := "Ada"
	profiles := &stubProfiles{updateResult: &models.Profile{ID: uuid.New(), Name: &name}}
	svc := NewService(txm, profiles, &stubFollows{}, zap.NewNop())

	updated, err := svc.UpdateProfile(context.Background(), uuid.New(), uuid.New(), nameFields())
	require.NoError(t, err)
	assert.Equal(t, "Ada", *updated.Name)
	assert.Equal(t, 1, txm.committed)
	assert.Zero(t, txm.rolledBack)
	assert.False(t, profiles.existsCalled, "no probe needed when the update matched")
}

func TestUpdateProfileMissingRowIsNotFound(t *testing.T) {
	txm := &fakeTxManager{}
	profiles := &stubProfiles{updateErr: repositories.ErrNoRowsUpdated, exists: false}
	svc := NewService(txm, profiles, &stubFollows{}, zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), uuid.New(), nameFields())
	assert.ErrorIs(t, err, services.ErrProfileNotFound)
	assert.True(t, profiles.existsCalled)
	assert.Equal(t, 1, txm.rolledBack)
}

func TestUpdateProfileWrongOwnerIsForbidden(t *testing.T) {
	txm := &fakeTxManager{}
	profiles := &stubProfiles{updateErr: repositories.ErrNoRowsUpdated, exists: true}
	svc := NewService(txm, profiles, &stubFollows{}, zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), uuid.New(), nameFields())
	// The row exists but the ownership predicate excluded it: never not-found.
	assert.ErrorIs(t, err, services.ErrNotOwner)
	assert.False(t, services.IsNotFoundError(err))
}

func TestUpdateProfileStorageErrorRollsBack(t *testing.T) {
	txm := &fakeTxManager{}
	profiles := &stubProfiles{updateErr: errors.New("connection reset")}
	svc := NewService(txm, profiles, &stubFollows{}, zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), uuid.New(), nameFields())
	require.Error(t, err)
	assert.True(t, services.IsTransactionError(err))
	assert.False(t, profiles.existsCalled, "probe only runs for a zero-row update")
	assert.Equal(t, 1, txm.rolledBack)
	assert.Zero(t, txm.committed)
}

func TestUpdateProfileProbeErrorRollsBack(t *testing.T) {
	txm := &fakeTxManager{}
	profiles := &stubProfiles{updateErr: repositories.ErrNoRowsUpdated, existsErr: errors.New("probe failed")}
	svc := NewService(txm, profiles, &stubFollows{}, zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), uuid.New(), nameFields())
	assert.True(t, services.IsTransactionError(err))
	assert.Equal(t, 1, txm.rolledBack)
}

func TestCreateFollowSuccess(t *testing.T) {
	txm := &fakeTxManager{}
	follows := &stubFollows{}
	svc := NewService(txm, &stubProfiles{}, follows, zap.NewNop())

	actor, target := uuid.New(), uuid.New()
	follow, err := svc.CreateFollow(context.Background(), actor, target)
	require.NoError(t, err)
	assert.Equal(t, actor, follow.FollowerID)
	assert.Equal(t, target, follow.FolloweeID)
	assert.WithinDuration(t, time.Now().UTC(), follow.CreatedAt, time.Minute)
	assert.True(t, follows.cleanedUp, "pending request cleanup shares the transaction")
	assert.Equal(t, 1, txm.committed)
}

func TestCreateFollowSelfTargetRejectedBeforeTransaction(t *testing.T) {
	txm := &fakeTxManager{}
	svc := NewService(txm, &stubProfiles{}, &stubFollows{}, zap.NewNop())

	id := uuid.New()
	_, err := svc.CreateFollow(context.Background(), id, id)
	assert.ErrorIs(t, err, services.ErrSelfFollow)
	assert.Zero(t, txm.begun, "self-target must not open a transaction")
}

func TestCreateFollowDuplicateIsConflict(t *testing.T) {
	txm := &fakeTxManager{}
	follows := &stubFollows{insertErr: repositories.ErrDuplicateRow}
	svc := NewService(txm, &stubProfiles{}, follows, zap.NewNop())

	_, err := svc.CreateFollow(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, services.ErrAlreadyFollows)
	assert.False(t, services.IsTransactionError(err), "a repeat follow is a client outcome, not a storage failure")
	assert.Equal(t, 1, txm.rolledBack)
}

func TestCreateFollowInsertFailureRollsBack(t *testing.T) {
	txm := &fakeTxManager{}
	follows := &stubFollows{insertErr: errors.New("unique violation")}
	svc := NewService(txm, &stubProfiles{}, follows, zap.NewNop())

	_, err := svc.CreateFollow(context.Background(), uuid.New(), uuid.New())
	assert.True(t, services.IsTransactionError(err))
	assert.False(t, follows.cleanedUp, "cleanup must not run after a failed insert")
	assert.Equal(t, 1, txm.rolledBack)
}

func TestCreateFollowCleanupFailureRollsBack(t *testing.T) {
	txm := &fakeTxManager{}
	follows := &stubFollows{cleanupErr: errors.New("deadlock detected")}
	svc := NewService(txm, &stubProfiles{}, follows, zap.NewNop())

	_, err := svc.CreateFollow(context.Background(), uuid.New(), uuid.New())
	assert.True(t, services.IsTransactionError(err))
	assert.Equal(t, 1, txm.rolledBack)
	assert.Zero(t, txm.committed, "partial insert must not commit")
}

func TestDeleteFollow(t *testing.T) {
	t.Run("existing edge removed", func(t *testing.T) {
		txm := &fakeTxManager{}
		svc := NewService(txm, &stubProfiles{}, &stubFollows{deleted: true}, zap.NewNop())
		require.NoError(t, svc.DeleteFollow(context.Background(), uuid.New(), uuid.New()))
		assert.Equal(t, 1, txm.committed)
	})

	t.Run("missing edge is not found", func(t *testing.T) {
		svc := NewService(&fakeTxManager{}, &stubProfiles{}, &stubFollows{deleted: false}, zap.NewNop())
		err := svc.DeleteFollow(context.Background(), uuid.New(), uuid.New())
		assert.True(t, services.IsNotFoundError(err))
	})

	t.Run("self target rejected", func(t *testing.T) {
		txm := &fakeTxManager{}
		svc := NewService(txm, &stubProfiles{}, &stubFollows{}, zap.NewNop())
		id := uuid.New()
		err := svc.DeleteFollow(context.Background(), id, id)
		assert.True(t, services.IsSelfTargetError(err))
		assert.Zero(t, txm.begun)
	})
}
