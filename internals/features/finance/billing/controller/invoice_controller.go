// file: internals/features/finance/billing/controller/invoice_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/billing/dto"
	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	helper "sekolahku_backend/internals/helpers"
)

type InvoiceHandler struct {
	DB *gorm.DB
}

// =======================================================
// LIST
// GET /api/a/invoices?batch_id=&student_id=&status=&search=
// Status dihitung saat query, bukan disimpan, jadi filter status
// dievaluasi setelah baris dimuat.
// =======================================================

func (h *InvoiceHandler) ListInvoices(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	now := time.Now()

	q := h.DB.Model(&billingModel.Invoice{})

	if v := strings.TrimSpace(c.Query("batch_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid batch_id")
		}
		q = q.Where("invoice_batch_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("student_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("invoice_student_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		q = q.Where("LOWER(invoice_student_name_snapshot) LIKE ?", "%"+strings.ToLower(v)+"%")
	}

	statusFilter := strings.TrimSpace(strings.ToLower(c.Query("status")))
	if statusFilter != "" && !billingModel.ValidInvoiceStatus(statusFilter) {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid status filter")
	}

	allowed := map[string]string{
		"created_at": "invoice_created_at",
		"due_date":   "invoice_due_date",
		"student":    "invoice_student_name_snapshot",
		"total":      "invoice_total_amount_idr",
	}
	order, err := p.SafeOrderClause(allowed, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rows []billingModel.Invoice
	if err := q.Order(order).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// filter status derived + paginasi in-memory
	filtered := rows[:0]
	for _, inv := range rows {
		if statusFilter != "" && string(inv.Status(now)) != statusFilter {
			continue
		}
		filtered = append(filtered, inv)
	}

	total := int64(len(filtered))
	start := p.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + p.Limit()
	if p.All {
		end = len(filtered)
	} else if end > len(filtered) {
		end = len(filtered)
	}
	page := filtered[start:end]

	return helper.JsonList(c, "invoices", dto.ToInvoiceResponses(page, now), helper.BuildMeta(total, p))
}

// =======================================================
// GET BY ID
// GET /api/a/invoices/:id
// =======================================================

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m billingModel.Invoice
	if err := h.DB.First(&m, "invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "invoice", dto.ToInvoiceResponse(m, time.Now()))
}
