// file: internals/features/finance/reminders/service/schedule.go
package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	reminderModel "sekolahku_backend/internals/features/finance/reminders/model"
	dirModel "sekolahku_backend/internals/features/school/directory/model"
)

// =======================================================
// CADENCE — murni kalender, tanpa side effect.
// Anchor = due date dikurangi lead days.
//   once   : tembak tepat di anchor
//   daily  : setiap hari mulai anchor
//   weekly : anchor, anchor+7, dst
// Berhenti setelah due date + grace days.
// =======================================================

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Anchor menghitung tanggal mulai pengingat untuk satu batch.
func Anchor(dueDate time.Time, leadDays int16) time.Time {
	return dateOnly(dueDate).AddDate(0, 0, -int(leadDays))
}

// LatestInstance mengembalikan instance cadence terakhir yang sudah
// jatuh pada asOf, atau false jika belum ada (atau sudah lewat masa).
func LatestInstance(freq billingModel.ReminderFrequency, dueDate time.Time, leadDays int16, asOf time.Time, graceDays int) (time.Time, bool) {
	anchor := Anchor(dueDate, leadDays)
	day := dateOnly(asOf)
	stop := dateOnly(dueDate).AddDate(0, 0, graceDays)

	if day.Before(anchor) || day.After(stop) {
		return time.Time{}, false
	}

	switch freq {
	case billingModel.ReminderFrequencyOnce:
		return anchor, true
	case billingModel.ReminderFrequencyDaily:
		return day, true
	case billingModel.ReminderFrequencyWeekly:
		weeks := int(day.Sub(anchor).Hours()) / (24 * 7)
		return anchor.AddDate(0, 0, weeks*7), true
	}
	return time.Time{}, false
}

// =======================================================
// DUE REMINDERS — scan invoice yang belum lunas dan belum
// ditembak untuk instance cadence terkini.
// =======================================================

type ReminderTask struct {
	InvoiceID      uuid.UUID  `json:"invoice_id"`
	StudentID      uuid.UUID  `json:"student_id"`
	StudentName    string     `json:"student_name"`
	GuardianUserID *uuid.UUID `json:"guardian_user_id,omitempty"`
	DueAmountIDR   int        `json:"due_amount_idr"`
	DueDate        time.Time  `json:"due_date"`
	FireDate       time.Time  `json:"fire_date"`
}

func DueReminders(db *gorm.DB, asOf time.Time, graceDays int) ([]ReminderTask, error) {
	var batches []billingModel.FeeAssignmentBatch
	if err := db.Find(&batches).Error; err != nil {
		return nil, err
	}

	var out []ReminderTask
	for _, b := range batches {
		if !b.HasReminderSettings() {
			log.Printf("[REMINDER] skip batch=%s: no reminder settings", b.FeeBatchID)
			continue
		}
		fireDate, ok := LatestInstance(b.FeeBatchReminderFrequency, b.FeeBatchDueDate, b.FeeBatchReminderLeadDays, asOf, graceDays)
		if !ok {
			continue
		}

		var invoices []billingModel.Invoice
		if err := db.Where("invoice_batch_id = ?", b.FeeBatchID).Find(&invoices).Error; err != nil {
			return nil, err
		}

		for _, inv := range invoices {
			if inv.Status(asOf) == billingModel.InvoiceStatusPaid {
				continue
			}

			var fired int64
			if err := db.Model(&reminderModel.ReminderLog{}).
				Where("reminder_log_invoice_id = ? AND reminder_log_fire_date = ?", inv.InvoiceID, fireDate).
				Count(&fired).Error; err != nil {
				return nil, err
			}
			if fired > 0 {
				continue
			}

			var guardian *uuid.UUID
			var student dirModel.SchoolStudent
			if err := db.First(&student, "school_student_id = ?", inv.InvoiceStudentID).Error; err == nil {
				guardian = student.SchoolStudentGuardianUserID
			}

			out = append(out, ReminderTask{
				InvoiceID:      inv.InvoiceID,
				StudentID:      inv.InvoiceStudentID,
				StudentName:    inv.InvoiceStudentNameSnapshot,
				GuardianUserID: guardian,
				DueAmountIDR:   inv.RemainingAmountIDR(),
				DueDate:        inv.InvoiceDueDate,
				FireDate:       fireDate,
			})
		}
	}
	return out, nil
}
