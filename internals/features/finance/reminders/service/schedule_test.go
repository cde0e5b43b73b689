// file: internals/features/finance/reminders/service/schedule_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	reminderModel "sekolahku_backend/internals/features/finance/reminders/model"
	dirModel "sekolahku_backend/internals/features/school/directory/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLatestInstance(t *testing.T) {
	due := date(2026, 2, 5)
	const lead = 7 // anchor = 2026-01-29
	const grace = 7

	cases := []struct {
		name     string
		freq     billingModel.ReminderFrequency
		asOf     time.Time
		wantFire time.Time
		wantOK   bool
	}{
		{"before anchor", billingModel.ReminderFrequencyWeekly, date(2026, 1, 20), time.Time{}, false},
		{"weekly on anchor", billingModel.ReminderFrequencyWeekly, date(2026, 1, 29), date(2026, 1, 29), true},
		{"weekly next day still first instance", billingModel.ReminderFrequencyWeekly, date(2026, 1, 30), date(2026, 1, 29), true},
		{"weekly second instance", billingModel.ReminderFrequencyWeekly, date(2026, 2, 5), date(2026, 2, 5), true},
		{"weekly within grace", billingModel.ReminderFrequencyWeekly, date(2026, 2, 10), date(2026, 2, 5), true},
		{"weekly past grace", billingModel.ReminderFrequencyWeekly, date(2026, 2, 13), time.Time{}, false},

		{"once fires at anchor only", billingModel.ReminderFrequencyOnce, date(2026, 2, 1), date(2026, 1, 29), true},
		{"once past grace", billingModel.ReminderFrequencyOnce, date(2026, 2, 20), time.Time{}, false},

		{"daily tracks asOf", billingModel.ReminderFrequencyDaily, date(2026, 2, 1), date(2026, 2, 1), true},
		{"daily at grace boundary", billingModel.ReminderFrequencyDaily, date(2026, 2, 12), date(2026, 2, 12), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fire, ok := LatestInstance(tc.freq, due, lead, tc.asOf, grace)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && !fire.Equal(tc.wantFire) {
				t.Fatalf("fire = %s, want %s", fire.Format("2006-01-02"), tc.wantFire.Format("2006-01-02"))
			}
		})
	}
}

func TestAnchor(t *testing.T) {
	got := Anchor(date(2026, 2, 5), 7)
	if !got.Equal(date(2026, 1, 29)) {
		t.Fatalf("anchor = %s, want 2026-01-29", got.Format("2006-01-02"))
	}
}

// ---------- DB round ----------

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&dirModel.SchoolStudent{},
		&billingModel.FeeAssignmentBatch{},
		&billingModel.Invoice{},
		&reminderModel.ReminderLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedBatchWithInvoice(t *testing.T, db *gorm.DB, due time.Time, lead int16, freq billingModel.ReminderFrequency, paid bool) billingModel.Invoice {
	t.Helper()
	classJSON, _ := billingModel.UUIDsToJSON([]uuid.UUID{uuid.New()})
	itemJSON, _ := billingModel.UUIDsToJSON([]uuid.UUID{uuid.New()})
	b := billingModel.FeeAssignmentBatch{
		FeeBatchName:              "SPP Ganjil",
		FeeBatchClassIDs:          classJSON,
		FeeBatchFeeItemIDs:        itemJSON,
		FeeBatchStartDate:         due.AddDate(0, -1, 0),
		FeeBatchDueDate:           due,
		FeeBatchReminderLeadDays:  lead,
		FeeBatchReminderFrequency: freq,
		FeeBatchTermsAccepted:     true,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	inv := billingModel.Invoice{
		InvoiceBatchID:             b.FeeBatchID,
		InvoiceStudentID:           uuid.New(),
		InvoiceStudentNameSnapshot: "Ahmad Fauzi",
		InvoiceFeeSnapshots:        itemJSON,
		InvoiceTotalAmountIDR:      2500000,
		InvoiceIssueDate:           b.FeeBatchStartDate,
		InvoiceDueDate:             due,
	}
	if paid {
		inv.InvoicePaidAmountIDR = inv.InvoiceTotalAmountIDR
		paidAt := due.AddDate(0, 0, -3)
		inv.InvoicePaidAt = &paidAt
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}

func TestDueReminders_SkipsPaidAndFired(t *testing.T) {
	db := openTestDB(t)
	due := date(2026, 2, 5)

	unpaid := seedBatchWithInvoice(t, db, due, 7, billingModel.ReminderFrequencyWeekly, false)
	seedBatchWithInvoice(t, db, due, 7, billingModel.ReminderFrequencyWeekly, true)

	asOf := date(2026, 1, 30)
	tasks, err := DueReminders(db, asOf, 7)
	if err != nil {
		t.Fatalf("due reminders: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task (paid skipped), got %d", len(tasks))
	}
	if tasks[0].InvoiceID != unpaid.InvoiceID {
		t.Fatalf("wrong invoice in task")
	}
	if !tasks[0].FireDate.Equal(date(2026, 1, 29)) {
		t.Fatalf("fire date = %s, want 2026-01-29", tasks[0].FireDate.Format("2006-01-02"))
	}
	if tasks[0].DueAmountIDR != 2500000 {
		t.Fatalf("due amount = %d, want 2500000", tasks[0].DueAmountIDR)
	}

	// sudah ditembak untuk instance ini: tidak muncul lagi
	logEntry := reminderModel.ReminderLog{
		ReminderLogInvoiceID: unpaid.InvoiceID,
		ReminderLogFireDate:  tasks[0].FireDate,
	}
	if err := db.Create(&logEntry).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}
	tasks, err = DueReminders(db, asOf, 7)
	if err != nil {
		t.Fatalf("due reminders after log: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected 0 tasks after log, got %d", len(tasks))
	}
}

func TestDueReminders_BeforeAnchor(t *testing.T) {
	db := openTestDB(t)
	seedBatchWithInvoice(t, db, date(2026, 2, 5), 7, billingModel.ReminderFrequencyWeekly, false)

	tasks, err := DueReminders(db, date(2026, 1, 20), 7)
	if err != nil {
		t.Fatalf("due reminders: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks before anchor, got %d", len(tasks))
	}
}

// recorder menangkap task yang dipublish tanpa broker sungguhan.
type recorderPublisher struct {
	tasks []ReminderTask
}

func (r *recorderPublisher) Publish(_ context.Context, task ReminderTask) error {
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *recorderPublisher) Close() error { return nil }

func TestDispatcher_FiresOncePerInstance(t *testing.T) {
	db := openTestDB(t)
	seedBatchWithInvoice(t, db, date(2026, 2, 5), 7, billingModel.ReminderFrequencyOnce, false)

	rec := &recorderPublisher{}
	d := NewDispatcher(db, rec, 7)

	asOf := date(2026, 1, 30)
	sent, err := d.Run(context.Background(), asOf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sent != 1 || len(rec.tasks) != 1 {
		t.Fatalf("first round sent=%d published=%d, want 1/1", sent, len(rec.tasks))
	}

	// putaran kedua pada hari yang sama: instance sudah tercatat
	sent, err = d.Run(context.Background(), asOf)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if sent != 0 || len(rec.tasks) != 1 {
		t.Fatalf("second round sent=%d published=%d, want 0/1", sent, len(rec.tasks))
	}
}
