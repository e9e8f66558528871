package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Profile represents a member profile, the mutable resource of the update
// pipeline. Nullable columns use pointer types so a stored NULL survives the
// scan and the projection can decide how to render it.
type Profile struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OwnerID     uuid.UUID       `json:"owner_id" db:"owner_id"`
	Name        *string         `json:"name" db:"name"`
	Bio         *string         `json:"bio" db:"bio"`
	Latitude    *float64        `json:"latitude" db:"latitude"`
	Longitude   *float64        `json:"longitude" db:"longitude"`
	Interests   []string        `json:"interests" db:"interests"`
	Preferences json.RawMessage `json:"preferences" db:"preferences"`
	Verified    *bool           `json:"verified" db:"verified"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// ProfileProjection is the external shape of a profile. Stored NULL arrays and
// objects render as empty collections, and the verified flag is always present
// even when false, so clients never have to null-check collection fields.
type ProfileProjection struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Name        string          `json:"name"`
	Bio         string          `json:"bio"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Interests   []string        `json:"interests"`
	Preferences json.RawMessage `json:"preferences"`
	Verified    bool            `json:"verified"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Project maps the stored row to the external response contract.
func (p *Profile) Project() *ProfileProjection {
	proj := &ProfileProjection{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Interests:   []string{},
		Preferences: json.RawMessage("{}"),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Name != nil {
		proj.Name = *p.Name
	}
	if p.Bio != nil {
		proj.Bio = *p.Bio
	}
	if p.Interests != nil {
		proj.Interests = p.Interests
	}
	if len(p.Preferences) > 0 && string(p.Preferences) != "null" {
		proj.Preferences = p.Preferences
	}
	if p.Verified != nil {
		proj.Verified = *p.Verified
	}
	return proj
}
