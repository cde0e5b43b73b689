// file: internals/features/finance/reports/dto/report_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
)

// InvoiceSummary: satu baris ekspor, status dihitung saat seleksi.
type InvoiceSummary struct {
	InvoiceID   uuid.UUID                  `json:"invoice_id"`
	BatchID     uuid.UUID                  `json:"batch_id"`
	StudentID   uuid.UUID                  `json:"student_id"`
	StudentName string                     `json:"student_name"`
	Status      billingModel.InvoiceStatus `json:"status"`

	TotalAmountIDR     int `json:"total_amount_idr"`
	PaidAmountIDR      int `json:"paid_amount_idr"`
	RemainingAmountIDR int `json:"remaining_amount_idr"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   time.Time  `json:"due_date"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func ToInvoiceSummary(m billingModel.Invoice, now time.Time) InvoiceSummary {
	return InvoiceSummary{
		InvoiceID:   m.InvoiceID,
		BatchID:     m.InvoiceBatchID,
		StudentID:   m.InvoiceStudentID,
		StudentName: m.InvoiceStudentNameSnapshot,
		Status:      m.Status(now),

		TotalAmountIDR:     m.InvoiceTotalAmountIDR,
		PaidAmountIDR:      m.InvoicePaidAmountIDR,
		RemainingAmountIDR: m.RemainingAmountIDR(),

		IssueDate: m.InvoiceIssueDate,
		DueDate:   m.InvoiceDueDate,
		PaidAt:    m.InvoicePaidAt,
	}
}
