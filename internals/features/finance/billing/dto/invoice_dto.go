// file: internals/features/finance/billing/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
)

////////////////////////////////////////////////////////////////////////////////
// INVOICE — response DTO (status selalu derived saat mapping)
////////////////////////////////////////////////////////////////////////////////

type InvoiceResponse struct {
	InvoiceID        uuid.UUID `json:"invoice_id"`
	InvoiceBatchID   uuid.UUID `json:"invoice_batch_id"`
	InvoiceStudentID uuid.UUID `json:"invoice_student_id"`

	InvoiceStudentName string `json:"invoice_student_name"`

	FeeSnapshots []billingModel.FeeItemSnapshot `json:"fee_snapshots"`

	TotalAmountIDR     int `json:"total_amount_idr"`
	PaidAmountIDR      int `json:"paid_amount_idr"`
	RemainingAmountIDR int `json:"remaining_amount_idr"`

	Status billingModel.InvoiceStatus `json:"status"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   time.Time  `json:"due_date"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToInvoiceResponse(m billingModel.Invoice, now time.Time) InvoiceResponse {
	snaps, _ := m.FeeSnapshots()
	return InvoiceResponse{
		InvoiceID:        m.InvoiceID,
		InvoiceBatchID:   m.InvoiceBatchID,
		InvoiceStudentID: m.InvoiceStudentID,

		InvoiceStudentName: m.InvoiceStudentNameSnapshot,

		FeeSnapshots: snaps,

		TotalAmountIDR:     m.InvoiceTotalAmountIDR,
		PaidAmountIDR:      m.InvoicePaidAmountIDR,
		RemainingAmountIDR: m.RemainingAmountIDR(),

		Status: m.Status(now),

		IssueDate: m.InvoiceIssueDate,
		DueDate:   m.InvoiceDueDate,
		PaidAt:    m.InvoicePaidAt,

		CreatedAt: m.InvoiceCreatedAt,
		UpdatedAt: m.InvoiceUpdatedAt,
	}
}

func ToInvoiceResponses(list []billingModel.Invoice, now time.Time) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToInvoiceResponse(m, now))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// GENERATE — request/response
////////////////////////////////////////////////////////////////////////////////

type GenerateBatchResponse struct {
	FeeBatchID        uuid.UUID   `json:"fee_batch_id"`
	StudentsCovered   int         `json:"students_covered"`
	InvoicesCreated   int         `json:"invoices_created"`
	InvoicesExisting  int         `json:"invoices_existing"`
	TotalCommittedIDR int64       `json:"total_committed_idr"`
	InvoiceIDs        []uuid.UUID `json:"invoice_ids"`
}
