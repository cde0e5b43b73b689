// file: internals/features/finance/catalog/model/fee_item_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — jenis & semester fee item
============================== */

type FeeItemType string

const (
	FeeItemTypeMandatory FeeItemType = "mandatory"
	FeeItemTypeVoluntary FeeItemType = "voluntary"
)

type FeeItemSemester string

const (
	FeeItemSemester1   FeeItemSemester = "1"
	FeeItemSemester2   FeeItemSemester = "2"
	FeeItemSemesterAll FeeItemSemester = "all"
)

func ValidFeeItemType(t FeeItemType) bool {
	return t == FeeItemTypeMandatory || t == FeeItemTypeVoluntary
}

func ValidFeeItemSemester(s FeeItemSemester) bool {
	return s == FeeItemSemester1 || s == FeeItemSemester2 || s == FeeItemSemesterAll
}

/* ==============================================
   MODEL — katalog fee item (tabel fee_items)
   Edit katalog tidak pernah menyentuh invoice yang
   sudah terbit: generator menyimpan snapshot nilai.
============================================== */

type FeeItem struct {
	FeeItemID uuid.UUID `gorm:"column:fee_item_id;type:uuid;primaryKey" json:"fee_item_id"`

	FeeItemName string `gorm:"column:fee_item_name;type:varchar(100);not null" json:"fee_item_name"`
	FeeItemCode string `gorm:"column:fee_item_code;type:varchar(40);not null;uniqueIndex:uniq_fee_item_code" json:"fee_item_code"`

	// Nominal dalam rupiah (minor unit, integer)
	FeeItemAmountIDR int `gorm:"column:fee_item_amount_idr;type:int;not null;check:fee_item_amount_idr>0" json:"fee_item_amount_idr"`

	FeeItemType     FeeItemType     `gorm:"column:fee_item_type;type:varchar(20);not null;default:'mandatory';index" json:"fee_item_type"`
	FeeItemSemester FeeItemSemester `gorm:"column:fee_item_semester;type:varchar(3);not null;default:'all';index" json:"fee_item_semester"`

	FeeItemIsActive bool `gorm:"column:fee_item_is_active;not null;default:true;index" json:"fee_item_is_active"`

	FeeItemCreatedAt time.Time      `gorm:"column:fee_item_created_at;not null;autoCreateTime" json:"fee_item_created_at"`
	FeeItemUpdatedAt time.Time      `gorm:"column:fee_item_updated_at;not null;autoUpdateTime" json:"fee_item_updated_at"`
	FeeItemDeletedAt gorm.DeletedAt `gorm:"column:fee_item_deleted_at;index" json:"-"`
}

func (FeeItem) TableName() string { return "fee_items" }

func (m *FeeItem) BeforeCreate(tx *gorm.DB) error {
	if m.FeeItemID == uuid.Nil {
		m.FeeItemID = uuid.New()
	}
	m.FeeItemCode = NormalizeFeeCode(m.FeeItemCode)
	m.FeeItemName = strings.TrimSpace(m.FeeItemName)
	return nil
}

func (m *FeeItem) BeforeUpdate(tx *gorm.DB) error {
	m.FeeItemCode = NormalizeFeeCode(m.FeeItemCode)
	return nil
}

// NormalizeFeeCode: kode dibandingkan case-insensitive, disimpan upper-case.
func NormalizeFeeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
