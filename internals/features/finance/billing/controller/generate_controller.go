// file: internals/features/finance/billing/controller/generate_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/finance/billing/dto"
	"sekolahku_backend/internals/features/finance/billing/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/errs"
)

// =======================================================
// GENERATE INVOICES
// POST /api/a/fee-batches/:id/generate
// Idempotent: pemanggilan ulang hanya melengkapi yang belum ada.
// =======================================================

func (h *FeeBatchHandler) GenerateInvoices(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	gen := service.NewGenerator(h.DB)
	res, err := gen.GenerateBatch(id)
	if err != nil {
		if partial, ok := errs.AsPartial(err); ok {
			// Sebagian siswa gagal; caller bisa generate ulang untuk melanjutkan.
			return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
				"success": false,
				"message": "some invoices could not be created; re-run generate to resume",
				"data":    toGenerateResponse(id, res),
				"failed":  partial.Failed,
			})
		}
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	return helper.JsonOK(c, "invoices generated", toGenerateResponse(id, res))
}

func toGenerateResponse(batchID uuid.UUID, res *service.BatchResult) dto.GenerateBatchResponse {
	return dto.GenerateBatchResponse{
		FeeBatchID:        batchID,
		StudentsCovered:   res.StudentsCovered,
		InvoicesCreated:   res.InvoicesCreated,
		InvoicesExisting:  res.InvoicesExisting,
		TotalCommittedIDR: res.TotalCommittedIDR,
		InvoiceIDs:        res.InvoiceIDs,
	}
}
