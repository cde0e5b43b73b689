// file: internals/features/finance/billing/model/fee_batch_model.go
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — frekuensi reminder
============================== */

type ReminderFrequency string

const (
	ReminderFrequencyOnce   ReminderFrequency = "once"
	ReminderFrequencyDaily  ReminderFrequency = "daily"
	ReminderFrequencyWeekly ReminderFrequency = "weekly"
)

func ValidReminderFrequency(f ReminderFrequency) bool {
	return f == ReminderFrequencyOnce || f == ReminderFrequencyDaily || f == ReminderFrequencyWeekly
}

/* ==============================================
   MODEL — fee_assignment_batches
   Satu batch = satu putaran penagihan: cohort kelas
   + pilihan fee item + due date. Batch adalah unit
   idempoten pembuatan invoice.
============================================== */

type FeeAssignmentBatch struct {
	FeeBatchID uuid.UUID `gorm:"column:fee_batch_id;type:uuid;primaryKey" json:"fee_batch_id"`

	FeeBatchName string `gorm:"column:fee_batch_name;type:varchar(120);not null" json:"fee_batch_name"`

	// Target & pilihan item (disimpan sebagai JSON array of uuid;
	// grade sudah diekspansi ke kelas saat draft dibuat)
	FeeBatchClassIDs   datatypes.JSON `gorm:"column:fee_batch_class_ids;type:jsonb;not null" json:"fee_batch_class_ids"`
	FeeBatchFeeItemIDs datatypes.JSON `gorm:"column:fee_batch_fee_item_ids;type:jsonb;not null" json:"fee_batch_fee_item_ids"`

	FeeBatchStartDate time.Time `gorm:"column:fee_batch_start_date;type:date;not null" json:"fee_batch_start_date"`
	FeeBatchDueDate   time.Time `gorm:"column:fee_batch_due_date;type:date;not null" json:"fee_batch_due_date"`

	// Pengaturan reminder
	FeeBatchReminderLeadDays  int16             `gorm:"column:fee_batch_reminder_lead_days;type:smallint;not null;default:0" json:"fee_batch_reminder_lead_days"`
	FeeBatchReminderFrequency ReminderFrequency `gorm:"column:fee_batch_reminder_frequency;type:varchar(10);not null;default:'once'" json:"fee_batch_reminder_frequency"`

	FeeBatchTermsAccepted bool `gorm:"column:fee_batch_terms_accepted;not null;default:false" json:"fee_batch_terms_accepted"`

	FeeBatchCreatedAt time.Time      `gorm:"column:fee_batch_created_at;not null;autoCreateTime" json:"fee_batch_created_at"`
	FeeBatchUpdatedAt time.Time      `gorm:"column:fee_batch_updated_at;not null;autoUpdateTime" json:"fee_batch_updated_at"`
	FeeBatchDeletedAt gorm.DeletedAt `gorm:"column:fee_batch_deleted_at;index" json:"-"`
}

func (FeeAssignmentBatch) TableName() string { return "fee_assignment_batches" }

func (m *FeeAssignmentBatch) BeforeCreate(tx *gorm.DB) error {
	if m.FeeBatchID == uuid.Nil {
		m.FeeBatchID = uuid.New()
	}
	m.FeeBatchName = strings.TrimSpace(m.FeeBatchName)
	if m.FeeBatchName == "" {
		return fmt.Errorf("fee_batch_name is required")
	}
	return nil
}

/* ======================================
   HELPERS — (un)marshal id list JSON
====================================== */

func UUIDsToJSON(ids []uuid.UUID) (datatypes.JSON, error) {
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func UUIDsFromJSON(raw datatypes.JSON) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (m *FeeAssignmentBatch) ClassIDs() ([]uuid.UUID, error) {
	return UUIDsFromJSON(m.FeeBatchClassIDs)
}

func (m *FeeAssignmentBatch) FeeItemIDs() ([]uuid.UUID, error) {
	return UUIDsFromJSON(m.FeeBatchFeeItemIDs)
}

// HasReminderSettings: batch tanpa pengaturan valid di-skip oleh scheduler.
func (m *FeeAssignmentBatch) HasReminderSettings() bool {
	return ValidReminderFrequency(m.FeeBatchReminderFrequency) && m.FeeBatchReminderLeadDays >= 0
}
