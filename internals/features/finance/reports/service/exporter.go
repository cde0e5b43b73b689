// file: internals/features/finance/reports/service/exporter.go
package service

import (
	"time"

	"gorm.io/gorm"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	"sekolahku_backend/internals/features/finance/reports/dto"
	"sekolahku_backend/internals/helpers/errs"
)

// =======================================================
// EXPORTER — seleksi invoice untuk rekap keuangan.
// Filter rentang issue date + subset status (derived).
// =======================================================

type Exporter struct {
	DB *gorm.DB
}

func NewExporter(db *gorm.DB) *Exporter {
	return &Exporter{DB: db}
}

const maxExportSpan = 366 * 24 * time.Hour

// SelectForExport memvalidasi rentang dan filter status, lalu
// mengembalikan ringkasan invoice terurut issue date.
func (e *Exporter) SelectForExport(from, to time.Time, statuses []string, now time.Time) ([]dto.InvoiceSummary, error) {
	if to.Before(from) {
		return nil, errs.Validation("invalid range: start date is after end date")
	}
	if to.Sub(from) > maxExportSpan {
		return nil, errs.Validation("invalid range: span exceeds one year")
	}
	if len(statuses) == 0 {
		return nil, errs.Validation("status filter must not be empty")
	}

	want := make(map[billingModel.InvoiceStatus]bool, len(statuses))
	for _, s := range statuses {
		if !billingModel.ValidInvoiceStatus(s) {
			return nil, errs.Validation("unknown status %q in filter", s)
		}
		want[billingModel.InvoiceStatus(s)] = true
	}

	var rows []billingModel.Invoice
	if err := e.DB.
		Where("invoice_issue_date >= ? AND invoice_issue_date <= ?", from, to).
		Order("invoice_issue_date ASC, invoice_student_name_snapshot ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]dto.InvoiceSummary, 0, len(rows))
	for _, inv := range rows {
		if !want[inv.Status(now)] {
			continue
		}
		out = append(out, dto.ToInvoiceSummary(inv, now))
	}
	return out, nil
}
