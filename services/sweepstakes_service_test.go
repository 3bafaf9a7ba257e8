package services

import (
	"fmt"
	"strings"
	"testing"

	"sweepstakes-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// scriptedPoints deals scores in order, cycling when exhausted. Stands in for
// the crypto generator so tests are deterministic.
type scriptedPoints struct {
	scores []int
	next   int
}

func (g *scriptedPoints) NextScore() (int, error) {
	if len(g.scores) == 0 {
		return 0, nil
	}
	score := g.scores[g.next%len(g.scores)]
	g.next++
	return score, nil
}

func newTestService(t *testing.T, scores ...int) *SweepstakesService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Sweep{}, &models.Drawing{}, &models.SweepsUser{}))

	return &SweepstakesService{DB: db, Points: &scriptedPoints{scores: scores}}
}

func configureSweep(t *testing.T, s *SweepstakesService, prizeAmount float64, numPrizes int) {
	t.Helper()
	_, err := s.ConfigureCurrentSweep(SweepConfig{PrizeAmount: &prizeAmount, NumPrizes: &numPrizes})
	require.NoError(t, err)
}

func seedProfile(t *testing.T, s *SweepstakesService, userID, username, street, city, state string) {
	t.Helper()
	require.NoError(t, s.DB.Create(&models.SweepsUser{
		ID:             uuid.NewString(),
		ExternalUserID: userID,
		Username:       username,
		Street:         street,
		City:           city,
		State:          state,
	}).Error)
}

func countOpenDrawings(t *testing.T, s *SweepstakesService, userID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB.Model(&models.Drawing{}).
		Where("user_id = ? AND is_open = ?", userID, true).
		Count(&n).Error)
	return n
}

func countOpenSweeps(t *testing.T, s *SweepstakesService) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB.Model(&models.Sweep{}).
		Where("completed = ?", false).
		Count(&n).Error)
	return n
}
