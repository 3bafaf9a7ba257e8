package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"sweepstakes-service/models"
	"sweepstakes-service/utils"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// getOrOpenCurrentSweep returns the newest incomplete sweep, creating one
// owned by the requesting user if none exists. Runs inside the caller's
// transaction. Ordering by id DESC is a defensive tie-break: the invariant
// says at most one incomplete sweep exists, but if more ever did, the most
// recently opened one wins.
func (s *SweepstakesService) getOrOpenCurrentSweep(tx *gorm.DB, userID string) (*models.Sweep, error) {
	var sweep models.Sweep
	err := lockForUpdate(tx).
		Where("completed = ?", false).
		Order("id DESC").
		First(&sweep).Error
	if err == nil {
		return &sweep, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Prize amount and prize count stay unset until an admin configures the
	// sweep; CloseCurrentSweep refuses to run until then.
	sweep = models.Sweep{CreatedByID: userID}
	if err := tx.Create(&sweep).Error; err != nil {
		return nil, err
	}
	log.Printf("[SWEEP] Opened sweep %d (triggered by user %s)", sweep.ID, userID)
	return &sweep, nil
}

// CurrentSweep returns the newest incomplete sweep, or gorm.ErrRecordNotFound.
func (s *SweepstakesService) CurrentSweep() (*models.Sweep, error) {
	var sweep models.Sweep
	if err := s.DB.Where("completed = ?", false).
		Order("id DESC").
		First(&sweep).Error; err != nil {
		return nil, err
	}
	return &sweep, nil
}

// SweepConfig carries the out-of-band admin settings for the pending sweep.
// Nil fields are left untouched.
type SweepConfig struct {
	Name        *string
	PrizeAmount *float64
	NumPrizes   *int
	CloseAt     *time.Time
}

// ConfigureCurrentSweep applies prize settings to the open sweep. Returns
// gorm.ErrRecordNotFound when no sweep is open.
func (s *SweepstakesService) ConfigureCurrentSweep(cfg SweepConfig) (*models.Sweep, error) {
	var sweep models.Sweep
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Where("completed = ?", false).
			Order("id DESC").
			First(&sweep).Error; err != nil {
			return err
		}
		if cfg.Name != nil {
			sweep.Name = *cfg.Name
			sweep.Slug = slug.Make(*cfg.Name)
		}
		if cfg.PrizeAmount != nil {
			sweep.PrizeAmount = *cfg.PrizeAmount
		}
		if cfg.NumPrizes != nil {
			sweep.NumPrizes = *cfg.NumPrizes
		}
		if cfg.CloseAt != nil {
			sweep.CloseAt = cfg.CloseAt
		}
		return tx.Save(&sweep).Error
	})
	if err != nil {
		return nil, err
	}
	return &sweep, nil
}

// CloseCurrentSweep resolves the current sweep: marks it completed, pulls
// every open drawing into it, ranks them and awards the top NumPrizes. The
// open-drawing pool is deliberately global — a drawing opened under an older
// sweep is still swept up and re-attached to the sweep being closed.
func (s *SweepstakesService) CloseCurrentSweep() (*CloseResult, error) {
	var result CloseResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var sweep models.Sweep
		err := lockForUpdate(tx).
			Where("completed = ?", false).
			Order("id DESC").
			First(&sweep).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result = CloseResult{Status: NoOpenSweep}
			return nil
		}
		if err != nil {
			return err
		}

		if sweep.NumPrizes < 1 {
			result = CloseResult{Status: SweepUnconfigured, Sweep: &sweep}
			return nil
		}

		sweep.Completed = true
		if err := tx.Save(&sweep).Error; err != nil {
			return err
		}

		// Per-winner payout, untruncated. Truncation happens only at
		// presentation (the winners report and the payment message).
		drawingPrize := sweep.PrizeAmount / float64(sweep.NumPrizes)

		// Ties on points go to the earlier entry.
		var drawings []models.Drawing
		if err := lockForUpdate(tx).
			Where("is_open = ?", true).
			Order("points DESC, id ASC").
			Find(&drawings).Error; err != nil {
			return err
		}

		numWinners := sweep.NumPrizes
		if len(drawings) < numWinners {
			numWinners = len(drawings)
		}

		winners := make([]WinnerSummary, 0, numWinners)
		for i := range drawings {
			d := &drawings[i]
			d.SweepID = &sweep.ID
			d.IsOpen = false
			if i < numWinners {
				d.IsWinner = true
				prize := drawingPrize
				d.PrizeValue = &prize
				winners = append(winners, WinnerSummary{
					Username: s.usernameFor(tx, d.UserID),
					Prize:    int(drawingPrize),
				})
			}
			if err := tx.Save(d).Error; err != nil {
				return err
			}
		}

		result = CloseResult{
			Status:          SweepClosed,
			Sweep:           &sweep,
			PrizesAvailable: sweep.NumPrizes,
			PrizesAwarded:   numWinners,
			DrawingPrize:    drawingPrize,
			Winners:         winners,
		}
		log.Printf("[SWEEP] Closed sweep %d: %d prize(s) available, %d awarded",
			sweep.ID, result.PrizesAvailable, result.PrizesAwarded)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == SweepClosed {
		s.archiveResults(&result)
	}
	return &result, nil
}

// SweepHistory lists all sweeps, newest first, with their winning drawings.
func (s *SweepstakesService) SweepHistory() ([]models.Sweep, error) {
	var sweeps []models.Sweep
	if err := s.DB.Preload("Drawings", "is_winner = ?", true).
		Order("id DESC").
		Find(&sweeps).Error; err != nil {
		return nil, err
	}
	return sweeps, nil
}

// usernameFor falls back to the raw external id when the profile mirror has
// not caught up yet.
func (s *SweepstakesService) usernameFor(tx *gorm.DB, userID string) string {
	var user models.SweepsUser
	if err := tx.Where("external_user_id = ?", userID).First(&user).Error; err != nil {
		return userID
	}
	return user.Username
}

// archiveResults uploads the winners report to R2 and records its URL on the
// sweep. Best effort: a missing bucket or upload failure never unwinds the
// close itself.
func (s *SweepstakesService) archiveResults(result *CloseResult) {
	if !utils.R2Enabled() {
		return
	}

	report, err := json.MarshalIndent(struct {
		SweepID         uint            `json:"sweep_id"`
		Name            string          `json:"name,omitempty"`
		PrizesAvailable int             `json:"prizes_available"`
		PrizesAwarded   int             `json:"prizes_awarded"`
		Winners         []WinnerSummary `json:"winners"`
		ClosedAt        time.Time       `json:"closed_at"`
	}{
		SweepID:         result.Sweep.ID,
		Name:            result.Sweep.Name,
		PrizesAvailable: result.PrizesAvailable,
		PrizesAwarded:   result.PrizesAwarded,
		Winners:         result.Winners,
		ClosedAt:        time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		log.Printf("[SWEEP] Failed to serialize results for sweep %d: %v", result.Sweep.ID, err)
		return
	}

	key := fmt.Sprintf("results/sweep-%d.json", result.Sweep.ID)
	if result.Sweep.Slug != "" {
		key = fmt.Sprintf("results/%s-%d.json", result.Sweep.Slug, result.Sweep.ID)
	}

	url, err := utils.UploadResultsToR2(key, report)
	if err != nil {
		log.Printf("[SWEEP] Failed to archive results for sweep %d: %v", result.Sweep.ID, err)
		return
	}

	if err := s.DB.Model(result.Sweep).Update("results_url", url).Error; err != nil {
		log.Printf("[SWEEP] Failed to record results URL for sweep %d: %v", result.Sweep.ID, err)
		return
	}
	result.Sweep.ResultsURL = url
}
