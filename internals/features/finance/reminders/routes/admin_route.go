// file: internals/features/finance/reminders/routes/admin_route.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/reminders/controller"
)

func ReminderAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &controller.ReminderHandler{DB: db}

	r.Get("/reminders/due", ctrl.ListDueReminders)
}
