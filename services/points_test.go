package services

import (
	"testing"

	"sweepstakes-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestPoints(t *testing.T) {
	t.Run("creates a drawing and a sweep on first entry", func(t *testing.T) {
		s := newTestService(t, 424242)
		user := uuid.NewString()

		result, err := s.RequestPoints(user)
		require.NoError(t, err)
		require.Equal(t, EntryCreated, result.Status)
		require.Equal(t, 424242, result.Drawing.Points)
		require.GreaterOrEqual(t, result.Drawing.Points, 0)
		require.LessOrEqual(t, result.Drawing.Points, MaxPoints)
		require.True(t, result.Drawing.IsOpen)

		var sweep models.Sweep
		require.NoError(t, s.DB.First(&sweep).Error)
		require.False(t, sweep.Completed)
		require.Equal(t, user, sweep.CreatedByID)
		require.NotNil(t, result.Drawing.SweepID)
		require.Equal(t, sweep.ID, *result.Drawing.SweepID)
	})

	t.Run("is idempotent while a drawing is open", func(t *testing.T) {
		s := newTestService(t, 100, 200)
		user := uuid.NewString()

		first, err := s.RequestPoints(user)
		require.NoError(t, err)
		require.Equal(t, EntryCreated, first.Status)
		require.Equal(t, 100, first.Drawing.Points)

		second, err := s.RequestPoints(user)
		require.NoError(t, err)
		require.Equal(t, EntryAlreadyOpen, second.Status)
		require.Equal(t, 100, second.Drawing.Points)
		require.Equal(t, first.Drawing.ID, second.Drawing.ID)

		var drawings int64
		require.NoError(t, s.DB.Model(&models.Drawing{}).Count(&drawings).Error)
		require.EqualValues(t, 1, drawings)
		require.EqualValues(t, 1, countOpenSweeps(t, s))
	})

	t.Run("blocks reentry until the prize is claimed", func(t *testing.T) {
		s := newTestService(t, 100)
		user := uuid.NewString()

		prize := 50.0
		require.NoError(t, s.DB.Create(&models.Drawing{
			UserID:     user,
			Points:     900,
			IsOpen:     false,
			IsWinner:   true,
			PrizeValue: &prize,
		}).Error)

		result, err := s.RequestPoints(user)
		require.NoError(t, err)
		require.Equal(t, EntryPendingClaim, result.Status)
		require.Nil(t, result.Drawing)

		var drawings int64
		require.NoError(t, s.DB.Model(&models.Drawing{}).Count(&drawings).Error)
		require.EqualValues(t, 1, drawings)
		require.EqualValues(t, 0, countOpenSweeps(t, s))
	})

	t.Run("reuses the open sweep across users", func(t *testing.T) {
		s := newTestService(t, 10, 20)
		alice := uuid.NewString()
		bob := uuid.NewString()

		first, err := s.RequestPoints(alice)
		require.NoError(t, err)
		second, err := s.RequestPoints(bob)
		require.NoError(t, err)

		require.EqualValues(t, 1, countOpenSweeps(t, s))
		require.Equal(t, *first.Drawing.SweepID, *second.Drawing.SweepID)
	})
}

func TestDrawingHistory(t *testing.T) {
	s := newTestService(t, 5)
	user := uuid.NewString()

	require.NoError(t, s.DB.Create(&models.Drawing{UserID: user, Points: 1, IsOpen: false}).Error)
	_, err := s.RequestPoints(user)
	require.NoError(t, err)

	drawings, err := s.DrawingHistory(user)
	require.NoError(t, err)
	require.Len(t, drawings, 2)
	// Newest first
	require.True(t, drawings[0].IsOpen)
	require.Equal(t, 5, drawings[0].Points)
}
