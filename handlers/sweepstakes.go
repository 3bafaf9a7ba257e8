package handlers

import (
	"sweepstakes-service/middleware"
	"sweepstakes-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSweepstakesRoutes(app *fiber.App, sweepstakesService *services.SweepstakesService) {
	// 🔐 Everything is user-scoped; identity comes from the gateway headers
	secured := app.Group("/s", middleware.UserContextMiddleware())

	// Drawings & points
	secured.Post("/points", sweepstakesService.RequestPointsEndpoint)
	secured.Get("/drawings", sweepstakesService.DrawingHistoryEndpoint)

	// Prize check / claim
	secured.Get("/prize", sweepstakesService.DrawingStatusEndpoint)
	secured.Post("/prize", sweepstakesService.ClaimPrizeEndpoint)

	// Current sweep (read-only for users)
	secured.Get("/sweeps/current", sweepstakesService.CurrentSweepEndpoint)

	// 🔒 Admin-only sweep management
	admin := secured.Group("/admin", middleware.AdminOnlyMiddleware())
	admin.Post("/sweeps/close", sweepstakesService.CloseCurrentSweepEndpoint)
	admin.Patch("/sweeps/current", sweepstakesService.ConfigureCurrentSweepEndpoint)
	admin.Get("/sweeps", sweepstakesService.SweepHistoryEndpoint)
}
