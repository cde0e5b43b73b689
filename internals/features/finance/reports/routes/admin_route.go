// file: internals/features/finance/reports/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/reports/controller"
)

func ReportAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &controller.ReportHandler{DB: db}

	r.Get("/reports/invoices", ctrl.ExportInvoices)
}
