package models

import (
	"time"

	"gorm.io/gorm"
)

// Sweep represents one round of the sweepstakes. The newest Sweep with
// Completed=false is the current sweep; id order is creation order, which the
// "latest incomplete" lookups rely on.
type Sweep struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedByID string         `gorm:"index" json:"created_by_id"` // external id of the user whose entry opened the sweep
	Name        string         `json:"name"`
	Slug        string         `gorm:"index" json:"slug"`
	PrizeAmount float64        `json:"prize_amount"`
	NumPrizes   int            `json:"num_prizes"`
	Completed   bool           `gorm:"default:false;index" json:"completed"`
	CloseAt     *time.Time     `json:"close_at,omitempty"` // optional scheduled close, picked up by the close scheduler
	ResultsURL  string         `gorm:"type:text" json:"results_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Drawings []Drawing `json:"drawings,omitempty"`
}
