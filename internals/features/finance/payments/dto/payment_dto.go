// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	billingDTO "sekolahku_backend/internals/features/finance/billing/dto"
	paymentModel "sekolahku_backend/internals/features/finance/payments/model"
)

////////////////////////////////////////////////////////////////////////////////
// PAYMENT — DTO
////////////////////////////////////////////////////////////////////////////////

type PaymentCreateDTO struct {
	PaymentAmountIDR int64                      `json:"payment_amount_idr" validate:"required,gt=0"`
	PaymentMethod    paymentModel.PaymentMethod `json:"payment_method" validate:"required,oneof=cash bank_transfer card"`
	PaymentNotes     string                     `json:"payment_notes,omitempty" validate:"omitempty,max=500"`
}

type PaymentResponse struct {
	PaymentID        uuid.UUID `json:"payment_id"`
	PaymentInvoiceID uuid.UUID `json:"payment_invoice_id"`

	PaymentAmountIDR int64                      `json:"payment_amount_idr"`
	PaymentMethod    paymentModel.PaymentMethod `json:"payment_method"`
	PaymentStatus    paymentModel.PaymentStatus `json:"payment_status"`

	PaymentConfirmedBy *uuid.UUID `json:"payment_confirmed_by,omitempty"`
	PaymentConfirmedAt time.Time  `json:"payment_confirmed_at"`

	PaymentOverpaymentWarning bool   `json:"payment_overpayment_warning"`
	PaymentNotes              string `json:"payment_notes,omitempty"`

	PaymentCreatedAt time.Time `json:"payment_created_at"`
}

func ToPaymentResponse(m paymentModel.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        m.PaymentID,
		PaymentInvoiceID: m.PaymentInvoiceID,

		PaymentAmountIDR: m.PaymentAmountIDR,
		PaymentMethod:    m.PaymentMethod,
		PaymentStatus:    m.PaymentStatus,

		PaymentConfirmedBy: m.PaymentConfirmedBy,
		PaymentConfirmedAt: m.PaymentConfirmedAt,

		PaymentOverpaymentWarning: m.PaymentOverpaymentWarning,
		PaymentNotes:              m.PaymentNotes,

		PaymentCreatedAt: m.PaymentCreatedAt,
	}
}

func ToPaymentResponses(list []paymentModel.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}

// Detail invoice + riwayat pembayaran kronologis.
type InvoiceDetailResponse struct {
	Invoice  billingDTO.InvoiceResponse `json:"invoice"`
	Payments []PaymentResponse          `json:"payments"`
}
