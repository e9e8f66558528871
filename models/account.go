package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountStanding represents the standing of an account
type AccountStanding string

const (
	StandingActive     AccountStanding = "active"
	StandingSuspended  AccountStanding = "suspended"
	StandingRestricted AccountStanding = "restricted"
)

// Account represents a provisioned actor. Accounts are created outside this
// service and never mutated by the pipeline.
type Account struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Subject   string          `json:"subject" db:"subject"` // credential subject from the token issuer
	Standing  AccountStanding `json:"standing" db:"standing"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// IsActive returns true if the account is in good standing
func (a *Account) IsActive() bool {
	return a.Standing == StandingActive
}
