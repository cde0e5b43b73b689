// file: internals/features/finance/catalog/controller/fee_item_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/catalog/dto"
	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
	helper "sekolahku_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type FeeItemHandler struct {
	DB *gorm.DB
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// =======================================================
// CREATE
// POST /api/a/fee-items
// =======================================================

func (h *FeeItemHandler) CreateFeeItem(c *fiber.Ctx) error {
	var in dto.FeeItemCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validator.New().Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := dto.FeeItemCreateDTOToModel(in)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// cek duplikat code, abaikan yang soft-deleted
		var cnt int64
		if err := tx.Model(&catalogModel.FeeItem{}).
			Where("fee_item_code = ? AND fee_item_deleted_at IS NULL", m.FeeItemCode).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "fee item code already exists")
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee item code already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "fee item created", dto.ToFeeItemResponse(m))
}

// =======================================================
// UPDATE (partial)
// PATCH /api/a/fee-items/:id
// Catatan: edit hanya berlaku untuk invoice yang akan datang;
// invoice terbit memegang snapshot dan tidak tersentuh.
// =======================================================

func (h *FeeItemHandler) UpdateFeeItem(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.FeeItemUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validator.New().Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m catalogModel.FeeItem
	if err := h.DB.First(&m, "fee_item_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee item not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	dto.ApplyFeeItemUpdate(&m, in)

	if err := h.DB.Save(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee item code already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "fee item updated", dto.ToFeeItemResponse(m))
}

// =======================================================
// LIST
// GET /api/a/fee-items?semester=1&type=mandatory&active=true
// =======================================================

func (h *FeeItemHandler) ListFeeItems(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&catalogModel.FeeItem{})

	if v := c.Query("semester"); v != "" {
		q = q.Where("fee_item_semester = ?", v)
	}
	if v := c.Query("type"); v != "" {
		q = q.Where("fee_item_type = ?", v)
	}
	if v := c.Query("active"); v != "" {
		q = q.Where("fee_item_is_active = ?", strings.EqualFold(v, "true"))
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(fee_item_name) LIKE ? OR LOWER(fee_item_code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	allowed := map[string]string{
		"created_at": "fee_item_created_at",
		"name":       "fee_item_name",
		"code":       "fee_item_code",
		"amount":     "fee_item_amount_idr",
	}
	order, err := p.SafeOrderClause(allowed, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []catalogModel.FeeItem
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "fee items", dto.ToFeeItemResponses(list), helper.BuildMeta(total, p))
}

// =======================================================
// GET BY ID
// GET /api/a/fee-items/:id
// =======================================================

func (h *FeeItemHandler) GetFeeItem(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m catalogModel.FeeItem
	if err := h.DB.First(&m, "fee_item_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee item not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee item", dto.ToFeeItemResponse(m))
}

// =======================================================
// DELETE (soft delete)
// DELETE /api/a/fee-items/:id
// =======================================================

func (h *FeeItemHandler) DeleteFeeItem(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m catalogModel.FeeItem
	if err := h.DB.First(&m, "fee_item_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee item not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "fee item deleted", fiber.Map{"fee_item_id": id})
}
