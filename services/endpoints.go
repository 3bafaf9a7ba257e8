package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// amountPrinter formats payment amounts for the confirmation message.
var amountPrinter = message.NewPrinter(language.English)

// RequestPointsEndpoint lets the authenticated user enter the current sweep.
func (s *SweepstakesService) RequestPointsEndpoint(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	result, err := s.RequestPoints(userID)
	if err != nil {
		log.Printf("DB Error requesting points for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to request points"})
	}

	switch result.Status {
	case EntryPendingClaim:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status": "Please claim your prize before entering the next sweep!",
		})
	case EntryAlreadyOpen:
		return c.JSON(fiber.Map{
			"status": fmt.Sprintf("You already have an open drawing with %d points", result.Drawing.Points),
			"points": result.Drawing.Points,
		})
	default:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status": fmt.Sprintf("Total Points: %d", result.Drawing.Points),
			"points": result.Drawing.Points,
		})
	}
}

// DrawingStatusEndpoint reports the state of the user's latest drawing.
func (s *SweepstakesService) DrawingStatusEndpoint(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	result, err := s.DrawingStatus(userID)
	if err != nil {
		log.Printf("DB Error fetching drawing status for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch drawing status"})
	}

	switch result.Status {
	case PrizeNoDrawings:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "You have no drawings"})
	case PrizeWonUnclaimed:
		return c.JSON(fiber.Map{"status": "You Won. Please claim your prize"})
	case PrizeEnded:
		return c.JSON(fiber.Map{"status": "Sweep ended. Enter a new drawing!"})
	case PrizeStillOpen:
		return c.JSON(fiber.Map{"status": "Current drawing is still open"})
	default:
		return c.JSON(fiber.Map{"status": "You Lost"})
	}
}

// ClaimPrizeEndpoint claims the user's won prize.
func (s *SweepstakesService) ClaimPrizeEndpoint(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	result, err := s.ClaimPrize(userID)
	if err != nil {
		log.Printf("DB Error claiming prize for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to claim prize"})
	}

	switch result.Status {
	case PrizeNoDrawings:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "You have no drawings"})
	case PrizeAlreadyClaimed:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "Prize already claimed"})
	case PrizeNotYetAvailable:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "No prize available to claim yet"})
	case PrizeLost:
		return c.JSON(fiber.Map{"status": "You Lost"})
	default:
		return c.JSON(fiber.Map{
			"status": amountPrinter.Sprintf("Payment of %.2f sent to %s", result.Amount, result.Address),
			"amount": result.Amount,
		})
	}
}

// DrawingHistoryEndpoint lists the user's drawings, newest first.
func (s *SweepstakesService) DrawingHistoryEndpoint(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	drawings, err := s.DrawingHistory(userID)
	if err != nil {
		log.Printf("DB Error fetching drawings for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch drawings"})
	}
	return c.JSON(drawings)
}

// CurrentSweepEndpoint returns the open sweep, if any.
func (s *SweepstakesService) CurrentSweepEndpoint(c *fiber.Ctx) error {
	sweep, err := s.CurrentSweep()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No open sweep"})
		}
		log.Printf("DB Error fetching current sweep: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(sweep)
}

// CloseCurrentSweepEndpoint closes the current sweep (admin only).
func (s *SweepstakesService) CloseCurrentSweepEndpoint(c *fiber.Ctx) error {
	result, err := s.CloseCurrentSweep()
	if err != nil {
		log.Printf("DB Error closing sweep: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to close sweep"})
	}

	switch result.Status {
	case NoOpenSweep:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "No drawings entered"})
	case SweepUnconfigured:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Sweep has no prize configuration; set prize_amount and num_prizes first",
		})
	default:
		return c.JSON(fiber.Map{
			"status": fmt.Sprintf("Sweep Completed. %d prize(s) available, %d prize(s) awarded",
				result.PrizesAvailable, result.PrizesAwarded),
			"winners": result.Winners,
		})
	}
}

// ConfigureCurrentSweepEndpoint applies prize settings to the pending sweep
// (admin only). This is the out-of-band step that must happen before a sweep
// can be closed.
func (s *SweepstakesService) ConfigureCurrentSweepEndpoint(c *fiber.Ctx) error {
	var req struct {
		Name        *string    `json:"name"`
		PrizeAmount *float64   `json:"prize_amount"`
		NumPrizes   *int       `json:"num_prizes"`
		CloseAt     *time.Time `json:"close_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.PrizeAmount != nil && *req.PrizeAmount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prize_amount must be positive"})
	}
	if req.NumPrizes != nil && *req.NumPrizes < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "num_prizes must be a positive integer"})
	}

	sweep, err := s.ConfigureCurrentSweep(SweepConfig{
		Name:        req.Name,
		PrizeAmount: req.PrizeAmount,
		NumPrizes:   req.NumPrizes,
		CloseAt:     req.CloseAt,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No open sweep to configure"})
		}
		log.Printf("DB Error configuring sweep: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to configure sweep"})
	}
	return c.JSON(sweep)
}

// SweepHistoryEndpoint lists all sweeps with their winners (admin only).
func (s *SweepstakesService) SweepHistoryEndpoint(c *fiber.Ctx) error {
	sweeps, err := s.SweepHistory()
	if err != nil {
		log.Printf("DB Error fetching sweep history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sweeps"})
	}
	return c.JSON(sweeps)
}
