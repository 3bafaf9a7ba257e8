package services

import (
	"testing"

	"sweepstakes-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDrawingStatus(t *testing.T) {
	t.Run("reports no drawings", func(t *testing.T) {
		s := newTestService(t)
		result, err := s.DrawingStatus(uuid.NewString())
		require.NoError(t, err)
		require.Equal(t, PrizeNoDrawings, result.Status)
	})

	t.Run("reports an open drawing", func(t *testing.T) {
		s := newTestService(t, 42)
		user := uuid.NewString()
		_, err := s.RequestPoints(user)
		require.NoError(t, err)

		result, err := s.DrawingStatus(user)
		require.NoError(t, err)
		require.Equal(t, PrizeStillOpen, result.Status)
	})

	t.Run("reports a won, unclaimed prize", func(t *testing.T) {
		s := newTestService(t)
		user := uuid.NewString()
		prize := 100.0
		require.NoError(t, s.DB.Create(&models.Drawing{
			UserID: user, Points: 90, IsOpen: false, IsWinner: true, PrizeValue: &prize,
		}).Error)

		result, err := s.DrawingStatus(user)
		require.NoError(t, err)
		require.Equal(t, PrizeWonUnclaimed, result.Status)
	})

	t.Run("reports a closed non-winning drawing as lost", func(t *testing.T) {
		s := newTestService(t)
		user := uuid.NewString()
		require.NoError(t, s.DB.Create(&models.Drawing{
			UserID: user, Points: 10, IsOpen: false,
		}).Error)

		result, err := s.DrawingStatus(user)
		require.NoError(t, err)
		require.Equal(t, PrizeLost, result.Status)
	})

	t.Run("reports a claimed win as ended", func(t *testing.T) {
		s := newTestService(t)
		user := uuid.NewString()
		prize := 100.0
		require.NoError(t, s.DB.Create(&models.Drawing{
			UserID: user, Points: 90, IsOpen: false, IsWinner: true, PrizeClaimed: true, PrizeValue: &prize,
		}).Error)

		result, err := s.DrawingStatus(user)
		require.NoError(t, err)
		require.Equal(t, PrizeEnded, result.Status)
	})

	t.Run("judges only the most recent drawing", func(t *testing.T) {
		s := newTestService(t, 30)
		user := uuid.NewString()
		// An old loss does not mask a fresh open drawing.
		require.NoError(t, s.DB.Create(&models.Drawing{
			UserID: user, Points: 10, IsOpen: false,
		}).Error)
		_, err := s.RequestPoints(user)
		require.NoError(t, err)

		result, err := s.DrawingStatus(user)
		require.NoError(t, err)
		require.Equal(t, PrizeStillOpen, result.Status)
	})
}

func TestClaimPrize(t *testing.T) {
	t.Run("reports no drawings", func(t *testing.T) {
		s := newTestService(t)
		result, err := s.ClaimPrize(uuid.NewString())
		require.NoError(t, err)
		require.Equal(t, PrizeNoDrawings, result.Status)
	})

	t.Run("cannot claim while the drawing is open", func(t *testing.T) {
		s := newTestService(t, 42)
		user := uuid.NewString()
		_, err := s.RequestPoints(user)
		require.NoError(t, err)

		result, err := s.ClaimPrize(user)
		require.NoError(t, err)
		require.Equal(t, PrizeNotYetAvailable, result.Status)

		var drawing models.Drawing
		require.NoError(t, s.DB.Where("user_id = ?", user).First(&drawing).Error)
		require.False(t, drawing.PrizeClaimed)
	})

	t.Run("rejects a double claim", func(t *testing.T) {
		s := newTestService(t)
		user := uuid.NewString()
		prize := 100.0
		require.NoError(t, s.DB.Create(&models.Drawing{
			UserID: user, Points: 90, IsOpen: false, IsWinner: true, PrizeClaimed: true, PrizeValue: &prize,
		}).Error)

		result, err := s.ClaimPrize(user)
		require.NoError(t, err)
		require.Equal(t, PrizeAlreadyClaimed, result.Status)
	})

	t.Run("a losing drawing reports lost and stays unclaimed", func(t *testing.T) {
		s := newTestService(t)
		user := uuid.NewString()
		require.NoError(t, s.DB.Create(&models.Drawing{
			UserID: user, Points: 10, IsOpen: false,
		}).Error)

		result, err := s.ClaimPrize(user)
		require.NoError(t, err)
		require.Equal(t, PrizeLost, result.Status)

		var drawing models.Drawing
		require.NoError(t, s.DB.Where("user_id = ?", user).First(&drawing).Error)
		require.False(t, drawing.PrizeClaimed)
	})

	t.Run("pays a won prize to the profile address", func(t *testing.T) {
		s := newTestService(t)
		user := uuid.NewString()
		seedProfile(t, s, user, "gopher", "12 Main St", "Springfield", "IL")
		prize := 333.33
		require.NoError(t, s.DB.Create(&models.Drawing{
			UserID: user, Points: 90, IsOpen: false, IsWinner: true, PrizeValue: &prize,
		}).Error)

		result, err := s.ClaimPrize(user)
		require.NoError(t, err)
		require.Equal(t, PrizePaid, result.Status)
		require.Equal(t, 333.33, result.Amount)
		require.Equal(t, "12 Main St Springfield IL", result.Address)

		var drawing models.Drawing
		require.NoError(t, s.DB.Where("user_id = ?", user).First(&drawing).Error)
		require.True(t, drawing.PrizeClaimed)
	})
}

// Walks one user through a full round: enter, close, check, claim, re-enter.
func TestPrizeLifecycle(t *testing.T) {
	s := newTestService(t, 750, 333)
	user := uuid.NewString()
	seedProfile(t, s, user, "gopher", "12 Main St", "Springfield", "IL")

	entry, err := s.RequestPoints(user)
	require.NoError(t, err)
	require.Equal(t, EntryCreated, entry.Status)

	configureSweep(t, s, 1000, 1)
	closed, err := s.CloseCurrentSweep()
	require.NoError(t, err)
	require.Equal(t, SweepClosed, closed.Status)

	status, err := s.DrawingStatus(user)
	require.NoError(t, err)
	require.Equal(t, PrizeWonUnclaimed, status.Status)

	// Entering again before claiming is refused.
	blocked, err := s.RequestPoints(user)
	require.NoError(t, err)
	require.Equal(t, EntryPendingClaim, blocked.Status)

	claim, err := s.ClaimPrize(user)
	require.NoError(t, err)
	require.Equal(t, PrizePaid, claim.Status)
	require.Equal(t, 1000.0, claim.Amount)
	require.Equal(t, "12 Main St Springfield IL", claim.Address)

	status, err = s.DrawingStatus(user)
	require.NoError(t, err)
	require.Equal(t, PrizeEnded, status.Status)

	reentry, err := s.RequestPoints(user)
	require.NoError(t, err)
	require.Equal(t, EntryCreated, reentry.Status)
	require.Equal(t, 333, reentry.Drawing.Points)
}
