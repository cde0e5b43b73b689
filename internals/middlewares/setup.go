package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMW "sekolahku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar (urut: recovery → cors → limiter → logger)
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(loggerMW.LoggerMiddleware())
}
