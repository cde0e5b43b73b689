// file: internals/features/finance/billing/controller/fee_batch_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/billing/dto"
	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	dirservice "sekolahku_backend/internals/features/school/directory/service"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/errs"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type FeeBatchHandler struct {
	DB *gorm.DB
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// =======================================================
// CREATE (draft batch; grade diekspansi ke kelas di sini)
// POST /api/a/fee-batches
// =======================================================

func (h *FeeBatchHandler) CreateFeeBatch(c *fiber.Ctx) error {
	var in dto.FeeBatchCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validator.New().Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Ekspansi cohort sekali di boundary draft; batch menyimpan kelas final.
	cohort, err := dirservice.NewDirectory(h.DB).ResolveCohort(in.Grades, in.ClassIDs)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	m, err := dto.FeeBatchCreateDTOToModel(in, cohort.ClassIDs)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if m.FeeBatchDueDate.Before(m.FeeBatchStartDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "due date must be on or after start date")
	}

	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "fee assignment batch created", dto.ToFeeBatchResponse(m))
}

// =======================================================
// UPDATE (partial; hanya draft yang belum digenerate)
// PATCH /api/a/fee-batches/:id
// =======================================================

func (h *FeeBatchHandler) UpdateFeeBatch(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.FeeBatchUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validator.New().Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m billingModel.FeeAssignmentBatch
	if err := h.DB.First(&m, "fee_batch_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee assignment batch not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Batch yang sudah menghasilkan invoice tidak boleh diubah targetnya.
	var invCount int64
	if err := h.DB.Model(&billingModel.Invoice{}).
		Where("invoice_batch_id = ?", id).
		Count(&invCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if invCount > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "batch already generated; invoices are immutable")
	}

	dto.ApplyFeeBatchUpdate(&m, in)

	// re-resolve cohort / fee item jika dikirim
	if len(in.Grades) > 0 || len(in.ClassIDs) > 0 {
		cohort, err := dirservice.NewDirectory(h.DB).ResolveCohort(in.Grades, in.ClassIDs)
		if err != nil {
			return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
		}
		classJSON, err := billingModel.UUIDsToJSON(cohort.ClassIDs)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		m.FeeBatchClassIDs = classJSON
	}
	if len(in.FeeItemIDs) > 0 {
		itemJSON, err := billingModel.UUIDsToJSON(in.FeeItemIDs)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		m.FeeBatchFeeItemIDs = itemJSON
	}

	if m.FeeBatchDueDate.Before(m.FeeBatchStartDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "due date must be on or after start date")
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "fee assignment batch updated", dto.ToFeeBatchResponse(m))
}

// =======================================================
// LIST
// GET /api/a/fee-batches?search=&sort_by=&order=
// =======================================================

func (h *FeeBatchHandler) ListFeeBatches(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&billingModel.FeeAssignmentBatch{})

	if v := strings.TrimSpace(c.Query("search")); v != "" {
		q = q.Where("LOWER(fee_batch_name) LIKE ?", "%"+strings.ToLower(v)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	allowed := map[string]string{
		"created_at": "fee_batch_created_at",
		"name":       "fee_batch_name",
		"due_date":   "fee_batch_due_date",
		"start_date": "fee_batch_start_date",
	}
	order, err := p.SafeOrderClause(allowed, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []billingModel.FeeAssignmentBatch
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "fee assignment batches", dto.ToFeeBatchResponses(list), helper.BuildMeta(total, p))
}

// =======================================================
// GET BY ID
// GET /api/a/fee-batches/:id
// =======================================================

func (h *FeeBatchHandler) GetFeeBatch(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m billingModel.FeeAssignmentBatch
	if err := h.DB.First(&m, "fee_batch_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee assignment batch not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee assignment batch", dto.ToFeeBatchResponse(m))
}

// =======================================================
// DELETE (soft delete; hanya draft tanpa invoice)
// DELETE /api/a/fee-batches/:id
// =======================================================

func (h *FeeBatchHandler) DeleteFeeBatch(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var invCount int64
	if err := h.DB.Model(&billingModel.Invoice{}).
		Where("invoice_batch_id = ?", id).
		Count(&invCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if invCount > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "batch already generated; delete is not allowed")
	}

	var m billingModel.FeeAssignmentBatch
	if err := h.DB.First(&m, "fee_batch_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee assignment batch not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "fee assignment batch deleted", fiber.Map{"fee_batch_id": id})
}
