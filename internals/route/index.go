// file: internals/route/index.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	billingRoutes "sekolahku_backend/internals/features/finance/billing/routes"
	catalogRoutes "sekolahku_backend/internals/features/finance/catalog/routes"
	paymentRoutes "sekolahku_backend/internals/features/finance/payments/routes"
	reminderRoutes "sekolahku_backend/internals/features/finance/reminders/routes"
	reportRoutes "sekolahku_backend/internals/features/finance/reports/routes"
	directoryRoutes "sekolahku_backend/internals/features/school/directory/routes"
	authMid "sekolahku_backend/internals/middlewares/auth"
)

// SetupRoutes mendaftarkan seluruh endpoint aplikasi.
// Semua operasi keuangan di bawah /api/a dan wajib staf ber-JWT.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	admin := app.Group("/api/a",
		authMid.AuthJWT(authMid.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMid.OnlyStaff(),
	)

	directoryRoutes.DirectoryAdminRoutes(admin, db)
	catalogRoutes.CatalogAdminRoutes(admin, db)
	billingRoutes.BillingAdminRoutes(admin, db)
	paymentRoutes.PaymentAdminRoutes(admin, db)
	reminderRoutes.ReminderAdminRoutes(admin, db)
	reportRoutes.ReportAdminRoutes(admin, db)
}
