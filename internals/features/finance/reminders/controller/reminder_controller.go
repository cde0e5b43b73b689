// file: internals/features/finance/reminders/controller/reminder_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/reminders/service"
	helper "sekolahku_backend/internals/helpers"
)

type ReminderHandler struct {
	DB *gorm.DB
}

// =======================================================
// PREVIEW DUE REMINDERS
// GET /api/a/reminders/due?as_of=2026-02-01
// Dry-run: tidak menulis log, tidak publish.
// =======================================================

func (h *ReminderHandler) ListDueReminders(c *fiber.Ctx) error {
	asOf := time.Now()
	if v := strings.TrimSpace(c.Query("as_of")); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "as_of must be YYYY-MM-DD")
		}
		asOf = parsed
	}

	cfg := service.LoadReminderConfig()
	tasks, err := service.DueReminders(h.DB, asOf, cfg.GraceDays)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "due reminders", fiber.Map{
		"as_of": asOf.Format("2006-01-02"),
		"count": len(tasks),
		"tasks": tasks,
	})
}
