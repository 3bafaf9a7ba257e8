package models

import (
	"time"

	"gorm.io/gorm"
)

// SweepsUser is a local snapshot of profile-service user data needed by the
// sweepstakes service: a username for winner summaries and a mailing address
// for prize payments. Owned solely by this service, populated via the profile
// sync worker; drawings reference users by ExternalUserID only.
type SweepsUser struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string    `gorm:"uniqueIndex;not null" json:"external_user_id"` // the profile service's UUID
	Username       string    `gorm:"index;not null" json:"username"`
	Email          string    `json:"email,omitempty"`
	Street         string    `json:"street,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
