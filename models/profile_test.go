package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRendersStoredNulls(t *testing.T) {
	profile := &Profile{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	proj := profile.Project()
	assert.Equal(t, "", proj.Name)
	assert.Equal(t, []string{}, proj.Interests, "null array renders as empty, never null")
	assert.Equal(t, json.RawMessage("{}"), proj.Preferences)
	assert.False(t, proj.Verified, "absent flag renders as explicit false")
	assert.Nil(t, proj.Latitude)
}

func TestProjectKeepsStoredValues(t *testing.T) {
	name, bio := "Ada", "runner"
	lat := 51.5
	verified := true
	profile := &Profile{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        &name,
		Bio:         &bio,
		Latitude:    &lat,
		Interests:   []string{"running", "cycling"},
		Preferences: json.RawMessage(`{"units":"metric"}`),
		Verified:    &verified,
	}

	proj := profile.Project()
	assert.Equal(t, "Ada", proj.Name)
	assert.Equal(t, "runner", proj.Bio)
	assert.Equal(t, 51.5, *proj.Latitude)
	assert.Equal(t, []string{"running", "cycling"}, proj.Interests)
	assert.True(t, proj.Verified)
}

func TestProjectionJSONShape(t *testing.T) {
	profile := &Profile{ID: uuid.New(), OwnerID: uuid.New()}

	encoded, err := json.Marshal(profile.Project())
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &out))

	// Collection fields must never encode as JSON null.
	assert.Equal(t, []interface{}{}, out["interests"])
	assert.Equal(t, map[string]interface{}{}, out["preferences"])
	assert.Equal(t, false, out["verified"])
	assert.Contains(t, out, "ownerId")
	assert.NotContains(t, out, "owner_id")
}

func TestProjectTreatsJSONNullAsEmpty(t *testing.T) {
	profile := &Profile{
		ID:          uuid.New(),
		Preferences: json.RawMessage("null"),
	}
	assert.Equal(t, json.RawMessage("{}"), profile.Project().Preferences)
}

func TestAccountIsActive(t *testing.T) {
	assert.True(t, (&Account{Standing: StandingActive}).IsActive())
	assert.False(t, (&Account{Standing: StandingSuspended}).IsActive())
	assert.False(t, (&Account{Standing: StandingRestricted}).IsActive())
}
