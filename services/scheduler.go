// services/scheduler.go
package services

import (
	"log"
	"time"

	"sweepstakes-service/models"

	"github.com/go-co-op/gocron/v2"
)

// StartCloseScheduler closes sweeps whose scheduled close time has passed.
// The close itself goes through CloseCurrentSweep, so scheduled and manual
// closes behave identically.
func (s *SweepstakesService) StartCloseScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var due int64
			now := time.Now()
			err := s.DB.Model(&models.Sweep{}).
				Where("completed = ? AND close_at IS NOT NULL AND close_at <= ?", false, now).
				Count(&due).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			if due == 0 {
				return
			}

			result, err := s.CloseCurrentSweep()
			if err != nil {
				log.Printf("[Scheduler] Failed to close sweep: %v", err)
				return
			}
			switch result.Status {
			case SweepClosed:
				log.Printf("✅ Auto-closed sweep %d: %d prize(s) awarded", result.Sweep.ID, result.PrizesAwarded)
			case SweepUnconfigured:
				log.Printf("[Scheduler] Sweep %d is past close_at but has no prize configuration", result.Sweep.ID)
			}
		}),
	)
}
