// file: internals/features/finance/reports/service/exporter_test.go
package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	"sekolahku_backend/internals/helpers/errs"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&billingModel.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedInvoice(t *testing.T, db *gorm.DB, name string, issue, due time.Time, total, paid int, settled bool) billingModel.Invoice {
	t.Helper()
	snapJSON, _ := billingModel.UUIDsToJSON([]uuid.UUID{uuid.New()})
	inv := billingModel.Invoice{
		InvoiceBatchID:             uuid.New(),
		InvoiceStudentID:           uuid.New(),
		InvoiceStudentNameSnapshot: name,
		InvoiceFeeSnapshots:        snapJSON,
		InvoiceTotalAmountIDR:      total,
		InvoicePaidAmountIDR:       paid,
		InvoiceIssueDate:           issue,
		InvoiceDueDate:             due,
	}
	if settled {
		paidAt := due.AddDate(0, 0, -1)
		inv.InvoicePaidAt = &paidAt
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice %s: %v", name, err)
	}
	return inv
}

func TestSelectForExport_RangeValidation(t *testing.T) {
	db := openTestDB(t)
	e := NewExporter(db)
	now := date(2026, 3, 1)

	t.Run("start after end", func(t *testing.T) {
		_, err := e.SelectForExport(date(2026, 6, 1), date(2026, 1, 1), []string{"pending"}, now)
		if !errs.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("span over one year", func(t *testing.T) {
		_, err := e.SelectForExport(date(2025, 1, 1), date(2026, 6, 1), []string{"pending"}, now)
		if !errs.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("empty status filter", func(t *testing.T) {
		_, err := e.SelectForExport(date(2026, 1, 1), date(2026, 6, 1), nil, now)
		if !errs.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := e.SelectForExport(date(2026, 1, 1), date(2026, 6, 1), []string{"settled"}, now)
		if !errs.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestSelectForExport_FiltersByDerivedStatus(t *testing.T) {
	db := openTestDB(t)
	e := NewExporter(db)

	issue := date(2026, 1, 5)
	due := date(2026, 2, 5)
	now := date(2026, 2, 10) // lewat jatuh tempo

	seedInvoice(t, db, "Lunas", issue, due, 1000000, 1000000, true)
	// dua berikut lewat jatuh tempo pada `now`: keduanya overdue
	seedInvoice(t, db, "Cicil", issue, due, 1000000, 400000, false)
	seedInvoice(t, db, "Nunggak", issue, due, 1000000, 0, false)
	seedInvoice(t, db, "DiLuarRentang", date(2026, 7, 1), date(2026, 8, 1), 1000000, 0, false)

	t.Run("overdue only", func(t *testing.T) {
		rows, err := e.SelectForExport(date(2026, 1, 1), date(2026, 6, 30), []string{"overdue"}, now)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 overdue rows, got %d", len(rows))
		}
		for _, r := range rows {
			if r.Status != billingModel.InvoiceStatusOverdue {
				t.Errorf("row %s status = %s, want overdue", r.StudentName, r.Status)
			}
		}
	})

	t.Run("paid only", func(t *testing.T) {
		rows, err := e.SelectForExport(date(2026, 1, 1), date(2026, 6, 30), []string{"paid"}, now)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		if len(rows) != 1 || rows[0].StudentName != "Lunas" {
			t.Fatalf("expected only settled row, got %d rows", len(rows))
		}
	})

	t.Run("partial before due date", func(t *testing.T) {
		beforeDue := date(2026, 1, 20)
		rows, err := e.SelectForExport(date(2026, 1, 1), date(2026, 6, 30), []string{"partial"}, beforeDue)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		if len(rows) != 1 || rows[0].StudentName != "Cicil" {
			t.Fatalf("expected partial row before due, got %d rows", len(rows))
		}
		if rows[0].RemainingAmountIDR != 600000 {
			t.Fatalf("remaining = %d, want 600000", rows[0].RemainingAmountIDR)
		}
	})

	t.Run("range excludes later issue dates", func(t *testing.T) {
		rows, err := e.SelectForExport(date(2026, 1, 1), date(2026, 6, 30),
			[]string{"pending", "partial", "paid", "overdue"}, now)
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		for _, r := range rows {
			if r.StudentName == "DiLuarRentang" {
				t.Fatalf("row outside issue range leaked into export")
			}
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows in range, got %d", len(rows))
		}
	})
}
