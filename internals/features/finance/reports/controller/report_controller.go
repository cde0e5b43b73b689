// file: internals/features/finance/reports/controller/report_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/reports/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/errs"
)

type ReportHandler struct {
	DB *gorm.DB
}

// =======================================================
// EXPORT INVOICES
// GET /api/a/reports/invoices?from=2026-01-01&to=2026-06-30&status=pending,overdue
// =======================================================

func (h *ReportHandler) ExportInvoices(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query("from")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query("to")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "to must be YYYY-MM-DD")
	}

	var statuses []string
	for _, s := range strings.Split(c.Query("status"), ",") {
		if s = strings.TrimSpace(strings.ToLower(s)); s != "" {
			statuses = append(statuses, s)
		}
	}

	rows, err := service.NewExporter(h.DB).SelectForExport(from, to, statuses, time.Now())
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	return helper.JsonOK(c, "invoice export", fiber.Map{
		"from":  from.Format("2006-01-02"),
		"to":    to.Format("2006-01-02"),
		"count": len(rows),
		"rows":  rows,
	})
}
