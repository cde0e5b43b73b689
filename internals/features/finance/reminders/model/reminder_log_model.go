// file: internals/features/finance/reminders/model/reminder_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog mencatat jatuh tempo pengingat yang sudah ditembakkan.
// Unik per (invoice, tanggal penembakan): satu instance cadence
// tidak pernah dikirim dua kali.
type ReminderLog struct {
	ReminderLogID uuid.UUID `gorm:"column:reminder_log_id;type:uuid;primaryKey" json:"reminder_log_id"`

	ReminderLogInvoiceID uuid.UUID `gorm:"column:reminder_log_invoice_id;type:uuid;not null;uniqueIndex:uniq_reminder_invoice_fire,priority:1" json:"reminder_log_invoice_id"`
	ReminderLogFireDate  time.Time `gorm:"column:reminder_log_fire_date;type:date;not null;uniqueIndex:uniq_reminder_invoice_fire,priority:2" json:"reminder_log_fire_date"`

	ReminderLogSentAt    time.Time `gorm:"column:reminder_log_sent_at;not null;autoCreateTime" json:"reminder_log_sent_at"`
	ReminderLogCreatedAt time.Time `gorm:"column:reminder_log_created_at;autoCreateTime" json:"reminder_log_created_at"`
}

func (ReminderLog) TableName() string { return "reminder_logs" }

func (m *ReminderLog) BeforeCreate(tx *gorm.DB) error {
	if m.ReminderLogID == uuid.Nil {
		m.ReminderLogID = uuid.New()
	}
	return nil
}
