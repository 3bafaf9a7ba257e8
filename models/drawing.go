package models

import (
	"time"

	"gorm.io/gorm"
)

// Drawing is a single user's entry into a sweep: a randomly assigned point
// score that stays open until its sweep is resolved. A user has at most one
// open drawing at a time, and cannot open a new one while a won prize is
// still unclaimed.
type Drawing struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       string         `gorm:"index;not null" json:"user_id"`
	SweepID      *uint          `gorm:"index" json:"sweep_id,omitempty"`
	Points       int            `gorm:"not null" json:"points"`
	IsOpen       bool           `gorm:"index" json:"is_open"` // set explicitly on create; no column default
	IsWinner     bool           `gorm:"default:false" json:"is_winner"`
	PrizeClaimed bool           `gorm:"default:false" json:"prize_claimed"`
	PrizeValue   *float64       `json:"prize_value,omitempty"` // set when the owning sweep is closed and this drawing won
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
