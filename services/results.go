package services

import "sweepstakes-service/models"

// All sweepstakes outcomes are expected business states, not Go errors. The
// endpoints map these kinds onto the user-facing messages; an error return
// from a service method always means an infrastructure failure.

// EntryStatus is the outcome of a points request.
type EntryStatus string

const (
	EntryCreated      EntryStatus = "created"
	EntryAlreadyOpen  EntryStatus = "already_open"
	EntryPendingClaim EntryStatus = "pending_claim"
)

type EntryResult struct {
	Status  EntryStatus
	Drawing *models.Drawing // nil for EntryPendingClaim
}

// CloseStatus is the outcome of closing the current sweep.
type CloseStatus string

const (
	SweepClosed       CloseStatus = "closed"
	NoOpenSweep       CloseStatus = "no_open_sweep"
	SweepUnconfigured CloseStatus = "unconfigured" // prize amount / prize count never set by an admin
)

// WinnerSummary is one row of the close report. Prize is the per-winner
// payout truncated to a whole amount, as the report has always shown it; the
// exact value lives on the drawing.
type WinnerSummary struct {
	Username string `json:"username"`
	Prize    int    `json:"prize"`
}

type CloseResult struct {
	Status          CloseStatus
	Sweep           *models.Sweep
	PrizesAvailable int
	PrizesAwarded   int
	DrawingPrize    float64         // prize_amount / num_prizes, untruncated
	Winners         []WinnerSummary // in selection order, points descending
}

// ClaimStatus is the outcome of checking or claiming a prize.
type ClaimStatus string

const (
	PrizeNoDrawings      ClaimStatus = "no_drawings"
	PrizeWonUnclaimed    ClaimStatus = "won_unclaimed"
	PrizeEnded           ClaimStatus = "ended"
	PrizeStillOpen       ClaimStatus = "still_open"
	PrizeLost            ClaimStatus = "lost"
	PrizeAlreadyClaimed  ClaimStatus = "already_claimed"
	PrizeNotYetAvailable ClaimStatus = "not_yet_available"
	PrizePaid            ClaimStatus = "paid"
)

type ClaimResult struct {
	Status  ClaimStatus
	Amount  float64 // set for PrizePaid
	Address string  // set for PrizePaid: "street city state"
}
