// file: internals/features/finance/catalog/dto/fee_item_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
)

////////////////////////////////////////////////////////////////////////////////
// FEE ITEMS — DTO
////////////////////////////////////////////////////////////////////////////////

type FeeItemCreateDTO struct {
	FeeItemName      string                       `json:"fee_item_name" validate:"required,max=100"`
	FeeItemCode      string                       `json:"fee_item_code" validate:"required,max=40"`
	FeeItemAmountIDR int                          `json:"fee_item_amount_idr" validate:"required,gt=0"`
	FeeItemType      catalogModel.FeeItemType     `json:"fee_item_type" validate:"required,oneof=mandatory voluntary"`
	FeeItemSemester  catalogModel.FeeItemSemester `json:"fee_item_semester" validate:"required,oneof=1 2 all"`
	FeeItemIsActive  *bool                        `json:"fee_item_is_active,omitempty"`
}

// Update (partial)
type FeeItemUpdateDTO struct {
	FeeItemName      *string                       `json:"fee_item_name,omitempty" validate:"omitempty,max=100"`
	FeeItemCode      *string                       `json:"fee_item_code,omitempty" validate:"omitempty,max=40"`
	FeeItemAmountIDR *int                          `json:"fee_item_amount_idr,omitempty" validate:"omitempty,gt=0"`
	FeeItemType      *catalogModel.FeeItemType     `json:"fee_item_type,omitempty" validate:"omitempty,oneof=mandatory voluntary"`
	FeeItemSemester  *catalogModel.FeeItemSemester `json:"fee_item_semester,omitempty" validate:"omitempty,oneof=1 2 all"`
	FeeItemIsActive  *bool                         `json:"fee_item_is_active,omitempty"`
}

type FeeItemResponse struct {
	FeeItemID        uuid.UUID                    `json:"fee_item_id"`
	FeeItemName      string                       `json:"fee_item_name"`
	FeeItemCode      string                       `json:"fee_item_code"`
	FeeItemAmountIDR int                          `json:"fee_item_amount_idr"`
	FeeItemType      catalogModel.FeeItemType     `json:"fee_item_type"`
	FeeItemSemester  catalogModel.FeeItemSemester `json:"fee_item_semester"`
	FeeItemIsActive  bool                         `json:"fee_item_is_active"`
	FeeItemCreatedAt time.Time                    `json:"fee_item_created_at"`
	FeeItemUpdatedAt time.Time                    `json:"fee_item_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToFeeItemResponse(m catalogModel.FeeItem) FeeItemResponse {
	return FeeItemResponse{
		FeeItemID:        m.FeeItemID,
		FeeItemName:      m.FeeItemName,
		FeeItemCode:      m.FeeItemCode,
		FeeItemAmountIDR: m.FeeItemAmountIDR,
		FeeItemType:      m.FeeItemType,
		FeeItemSemester:  m.FeeItemSemester,
		FeeItemIsActive:  m.FeeItemIsActive,
		FeeItemCreatedAt: m.FeeItemCreatedAt,
		FeeItemUpdatedAt: m.FeeItemUpdatedAt,
	}
}

func ToFeeItemResponses(list []catalogModel.FeeItem) []FeeItemResponse {
	out := make([]FeeItemResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToFeeItemResponse(m))
	}
	return out
}

func FeeItemCreateDTOToModel(d FeeItemCreateDTO) catalogModel.FeeItem {
	active := true
	if d.FeeItemIsActive != nil {
		active = *d.FeeItemIsActive
	}
	return catalogModel.FeeItem{
		FeeItemName:      strings.TrimSpace(d.FeeItemName),
		FeeItemCode:      catalogModel.NormalizeFeeCode(d.FeeItemCode),
		FeeItemAmountIDR: d.FeeItemAmountIDR,
		FeeItemType:      d.FeeItemType,
		FeeItemSemester:  d.FeeItemSemester,
		FeeItemIsActive:  active,
	}
}

// ApplyFeeItemUpdate: partial update — hanya field yang dikirim
func ApplyFeeItemUpdate(m *catalogModel.FeeItem, d FeeItemUpdateDTO) {
	if d.FeeItemName != nil {
		m.FeeItemName = strings.TrimSpace(*d.FeeItemName)
	}
	if d.FeeItemCode != nil {
		m.FeeItemCode = catalogModel.NormalizeFeeCode(*d.FeeItemCode)
	}
	if d.FeeItemAmountIDR != nil {
		m.FeeItemAmountIDR = *d.FeeItemAmountIDR
	}
	if d.FeeItemType != nil {
		m.FeeItemType = *d.FeeItemType
	}
	if d.FeeItemSemester != nil {
		m.FeeItemSemester = *d.FeeItemSemester
	}
	if d.FeeItemIsActive != nil {
		m.FeeItemIsActive = *d.FeeItemIsActive
	}
}
