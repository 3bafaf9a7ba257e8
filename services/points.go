package services

import (
	"errors"
	"log"

	"sweepstakes-service/models"

	"gorm.io/gorm"
)

// RequestPoints is a user's entry into the sweepstakes. The whole sequence —
// unclaimed-prize guard, open-drawing lookup, sweep lookup/creation, drawing
// creation — runs in one transaction so the one-open-drawing-per-user and
// one-open-sweep invariants hold under concurrent requests.
func (s *SweepstakesService) RequestPoints(userID string) (*EntryResult, error) {
	var result EntryResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Claim-before-reentry: any past winning drawing with an unclaimed
		// prize blocks a new entry.
		var unclaimed int64
		if err := tx.Model(&models.Drawing{}).
			Where("user_id = ? AND is_winner = ? AND prize_claimed = ?", userID, true, false).
			Count(&unclaimed).Error; err != nil {
			return err
		}
		if unclaimed > 0 {
			result = EntryResult{Status: EntryPendingClaim}
			return nil
		}

		// Requesting points while a drawing is already open is informational
		// only: the existing drawing comes back unchanged.
		var current models.Drawing
		err := lockForUpdate(tx).
			Where("user_id = ? AND is_open = ?", userID, true).
			Order("id DESC").
			First(&current).Error
		if err == nil {
			result = EntryResult{Status: EntryAlreadyOpen, Drawing: &current}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		sweep, err := s.getOrOpenCurrentSweep(tx, userID)
		if err != nil {
			return err
		}

		points, err := s.Points.NextScore()
		if err != nil {
			return err
		}

		drawing := models.Drawing{
			UserID:  userID,
			SweepID: &sweep.ID,
			Points:  points,
			IsOpen:  true,
		}
		if err := tx.Create(&drawing).Error; err != nil {
			return err
		}
		log.Printf("[POINTS] User %s entered sweep %d with %d points", userID, sweep.ID, points)

		result = EntryResult{Status: EntryCreated, Drawing: &drawing}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DrawingHistory returns the user's drawings, newest first.
func (s *SweepstakesService) DrawingHistory(userID string) ([]models.Drawing, error) {
	var drawings []models.Drawing
	if err := s.DB.Where("user_id = ?", userID).
		Order("id DESC").
		Find(&drawings).Error; err != nil {
		return nil, err
	}
	return drawings, nil
}
