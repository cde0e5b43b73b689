// file: internals/features/finance/payments/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/payments/controller"
)

// PaymentAdminRoutes mendaftarkan pencatatan pembayaran (staff only).
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &controller.PaymentHandler{DB: db}

	r.Post("/invoices/:id/payments", ctrl.RecordPayment)
	r.Get("/invoices/:id/payments", ctrl.InvoicePayments)
	r.Post("/payments/:id/fail", ctrl.MarkPaymentFailed)
}
