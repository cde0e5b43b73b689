// file: internals/features/finance/billing/model/invoice_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
)

/* ==============================
   ENUM — status invoice (derived)
============================== */

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

func ValidInvoiceStatus(s string) bool {
	switch InvoiceStatus(s) {
	case InvoiceStatusPending, InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

/* ==============================
   SNAPSHOT — nilai fee item saat generate
   Value-copy: edit katalog setelahnya tidak
   pernah mengubah invoice terbit.
============================== */

type FeeItemSnapshot struct {
	FeeItemID uuid.UUID                `json:"fee_item_id"`
	Name      string                   `json:"name"`
	Code      string                   `json:"code"`
	Type      catalogModel.FeeItemType `json:"type"`
	AmountIDR int                      `json:"amount_idr"`
}

/* ==============================================
   MODEL — invoices
   Unik per (batch, student): kunci idempotency
   generate. Status TIDAK disimpan — selalu derived
   dari (total, paid, due date, paid_at).
============================================== */

type Invoice struct {
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey" json:"invoice_id"`

	InvoiceBatchID   uuid.UUID `gorm:"column:invoice_batch_id;type:uuid;not null;index;uniqueIndex:uniq_invoice_batch_student,priority:1" json:"invoice_batch_id"`
	InvoiceStudentID uuid.UUID `gorm:"column:invoice_student_id;type:uuid;not null;index;uniqueIndex:uniq_invoice_batch_student,priority:2" json:"invoice_student_id"`

	// Snapshot nama siswa untuk tampilan & export
	InvoiceStudentNameSnapshot string `gorm:"column:invoice_student_name_snapshot;type:varchar(100);not null" json:"invoice_student_name_snapshot"`

	// Snapshot fee item (ordered JSON array)
	InvoiceFeeSnapshots datatypes.JSON `gorm:"column:invoice_fee_snapshots;type:jsonb;not null" json:"invoice_fee_snapshots"`

	InvoiceTotalAmountIDR int `gorm:"column:invoice_total_amount_idr;type:int;not null;check:invoice_total_amount_idr>=0;index" json:"invoice_total_amount_idr"`
	InvoicePaidAmountIDR  int `gorm:"column:invoice_paid_amount_idr;type:int;not null;default:0;check:invoice_paid_amount_idr>=0" json:"invoice_paid_amount_idr"`

	InvoiceIssueDate time.Time  `gorm:"column:invoice_issue_date;type:date;not null;index" json:"invoice_issue_date"`
	InvoiceDueDate   time.Time  `gorm:"column:invoice_due_date;type:date;not null;index" json:"invoice_due_date"`
	InvoicePaidAt    *time.Time `gorm:"column:invoice_paid_at" json:"invoice_paid_at,omitempty"`

	InvoiceCreatedAt time.Time      `gorm:"column:invoice_created_at;not null;autoCreateTime;index" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time      `gorm:"column:invoice_updated_at;not null;autoUpdateTime" json:"invoice_updated_at"`
	InvoiceDeletedAt gorm.DeletedAt `gorm:"column:invoice_deleted_at;index" json:"-"`
}

func (Invoice) TableName() string { return "invoices" }

func (m *Invoice) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	return nil
}

/* ======================================
   DERIVED STATE
====================================== */

// RemainingAmountIDR: sisa tagihan, tidak pernah negatif.
func (m *Invoice) RemainingAmountIDR() int {
	r := m.InvoiceTotalAmountIDR - m.InvoicePaidAmountIDR
	if r < 0 {
		return 0
	}
	return r
}

// Status menghitung status dari data otoritatif.
// paid bersifat terminal: sekali invoice_paid_at terisi, status
// tidak pernah kembali ke pending/partial.
func (m *Invoice) Status(now time.Time) InvoiceStatus {
	if m.InvoicePaidAt != nil || (m.InvoiceTotalAmountIDR > 0 && m.InvoicePaidAmountIDR >= m.InvoiceTotalAmountIDR) {
		return InvoiceStatusPaid
	}
	if now.After(EndOfDay(m.InvoiceDueDate)) {
		return InvoiceStatusOverdue
	}
	if m.InvoicePaidAmountIDR > 0 {
		return InvoiceStatusPartial
	}
	return InvoiceStatusPending
}

// EndOfDay: due date bertipe date; jatuh tempo berakhir di akhir hari.
func EndOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 23, 59, 59, 0, t.Location())
}

/* ======================================
   SNAPSHOT HELPERS
====================================== */

func SnapshotsToJSON(snaps []FeeItemSnapshot) (datatypes.JSON, error) {
	b, err := json.Marshal(snaps)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func (m *Invoice) FeeSnapshots() ([]FeeItemSnapshot, error) {
	if len(m.InvoiceFeeSnapshots) == 0 {
		return nil, nil
	}
	var snaps []FeeItemSnapshot
	if err := json.Unmarshal(m.InvoiceFeeSnapshots, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// SnapshotFeeItem: value-copy satu entri katalog.
func SnapshotFeeItem(fi catalogModel.FeeItem) FeeItemSnapshot {
	return FeeItemSnapshot{
		FeeItemID: fi.FeeItemID,
		Name:      fi.FeeItemName,
		Code:      fi.FeeItemCode,
		Type:      fi.FeeItemType,
		AmountIDR: fi.FeeItemAmountIDR,
	}
}
