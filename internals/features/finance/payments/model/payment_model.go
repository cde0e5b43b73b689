// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — metode & status pembayaran
============================== */

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
)

func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

/* ==============================
   MODEL
   Append-only: record tidak pernah diubah nominalnya.
   Koreksi = tandai failed lalu catat pembayaran baru.
============================== */

type Payment struct {
	PaymentID        uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentInvoiceID uuid.UUID `gorm:"column:payment_invoice_id;type:uuid;not null;index:idx_payments_invoice" json:"payment_invoice_id"`

	PaymentAmountIDR int64         `gorm:"column:payment_amount_idr;not null" json:"payment_amount_idr"`
	PaymentMethod    PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentStatus    PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:completed" json:"payment_status"`

	// Operator yang mengonfirmasi setoran (dari JWT).
	PaymentConfirmedBy *uuid.UUID `gorm:"column:payment_confirmed_by;type:uuid" json:"payment_confirmed_by,omitempty"`
	PaymentConfirmedAt time.Time  `gorm:"column:payment_confirmed_at;not null" json:"payment_confirmed_at"`

	PaymentOverpaymentWarning bool   `gorm:"column:payment_overpayment_warning;not null;default:false" json:"payment_overpayment_warning"`
	PaymentNotes              string `gorm:"column:payment_notes;type:text" json:"payment_notes,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (Payment) TableName() string { return "payments" }

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	if m.PaymentConfirmedAt.IsZero() {
		m.PaymentConfirmedAt = time.Now()
	}
	return nil
}
