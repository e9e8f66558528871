package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow represents a directional relationship between two accounts
type Follow struct {
	FollowerID uuid.UUID `json:"follower_id" db:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id" db:"followee_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Follow model
func (Follow) TableName() string {
	return "follows"
}

// FollowProjection is the external shape of a created follow
type FollowProjection struct {
	FollowerID uuid.UUID `json:"followerId"`
	FolloweeID uuid.UUID `json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Project maps the stored row to the external response contract
func (f *Follow) Project() *FollowProjection {
	return &FollowProjection{
		FollowerID: f.FollowerID,
		FolloweeID: f.FolloweeID,
		CreatedAt:  f.CreatedAt,
	}
}
