package services

import (
	"errors"
	"fmt"
	"log"

	"sweepstakes-service/models"

	"gorm.io/gorm"
)

// DrawingStatus reports where the user's most recent drawing stands. Read
// only; never mutates.
func (s *SweepstakesService) DrawingStatus(userID string) (*ClaimResult, error) {
	var drawing models.Drawing
	err := s.DB.Where("user_id = ?", userID).
		Order("id DESC").
		First(&drawing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ClaimResult{Status: PrizeNoDrawings}, nil
	}
	if err != nil {
		return nil, err
	}

	result := &ClaimResult{}
	switch {
	case drawing.IsWinner && !drawing.PrizeClaimed:
		result.Status = PrizeWonUnclaimed
	case drawing.IsWinner || !drawing.IsOpen:
		result.Status = PrizeEnded
	case drawing.IsOpen:
		result.Status = PrizeStillOpen
	}

	applyLostOverride(&drawing, result)
	return result, nil
}

// ClaimPrize converts the user's won, unclaimed prize into a paid state and
// renders the payment destination from the mirrored profile address.
func (s *SweepstakesService) ClaimPrize(userID string) (*ClaimResult, error) {
	result := &ClaimResult{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var drawing models.Drawing
		err := lockForUpdate(tx).
			Where("user_id = ?", userID).
			Order("id DESC").
			First(&drawing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Status = PrizeNoDrawings
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case drawing.IsWinner && drawing.PrizeClaimed:
			result.Status = PrizeAlreadyClaimed
		case drawing.IsOpen:
			result.Status = PrizeNotYetAvailable
		case !drawing.IsWinner:
			// A losing drawing is never marked claimed; the attempt just
			// reports the loss.
			result.Status = PrizeLost
		default:
			drawing.PrizeClaimed = true
			if err := tx.Save(&drawing).Error; err != nil {
				return err
			}
			if drawing.PrizeValue != nil {
				result.Amount = *drawing.PrizeValue
			}
			result.Address = s.paymentAddress(tx, userID)
			result.Status = PrizePaid
			log.Printf("[PRIZE] User %s claimed drawing %d (prize %.2f)", userID, drawing.ID, result.Amount)
		}

		applyLostOverride(&drawing, result)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyLostOverride is the terminal rule carried over from the legacy flow: a
// closed, non-winning drawing always reads as a loss, whatever the branch
// ladder above computed.
func applyLostOverride(drawing *models.Drawing, result *ClaimResult) {
	if !drawing.IsOpen && !drawing.IsWinner {
		*result = ClaimResult{Status: PrizeLost}
	}
}

// paymentAddress renders "street city state" from the mirrored profile.
func (s *SweepstakesService) paymentAddress(tx *gorm.DB, userID string) string {
	var user models.SweepsUser
	if err := tx.Where("external_user_id = ?", userID).First(&user).Error; err != nil {
		log.Printf("[PRIZE] No mirrored profile for user %s: %v", userID, err)
		return ""
	}
	return fmt.Sprintf("%s %s %s", user.Street, user.City, user.State)
}
