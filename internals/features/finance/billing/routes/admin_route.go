// file: internals/features/finance/billing/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/billing/controller"
	"sekolahku_backend/internals/middlewares"
)

// BillingAdminRoutes mendaftarkan batch penagihan + invoice (staff only).
func BillingAdminRoutes(r fiber.Router, db *gorm.DB) {
	batchCtrl := &controller.FeeBatchHandler{DB: db}
	invCtrl := &controller.InvoiceHandler{DB: db}

	batch := r.Group("/fee-batches")
	batch.Post("/", batchCtrl.CreateFeeBatch)
	batch.Get("/", batchCtrl.ListFeeBatches)
	batch.Get("/:id", batchCtrl.GetFeeBatch)
	batch.Patch("/:id", batchCtrl.UpdateFeeBatch)
	batch.Delete("/:id", batchCtrl.DeleteFeeBatch)
	batch.Post("/:id/generate", middlewares.GenerateRateLimiter(), batchCtrl.GenerateInvoices)

	inv := r.Group("/invoices")
	inv.Get("/", invCtrl.ListInvoices)
	inv.Get("/:id", invCtrl.GetInvoice)
}
