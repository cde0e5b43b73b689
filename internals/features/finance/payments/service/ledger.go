// file: internals/features/finance/payments/service/ledger.go
package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	paymentModel "sekolahku_backend/internals/features/finance/payments/model"
	"sekolahku_backend/internals/helpers/errs"
)

// =======================================================
// LEDGER — satu-satunya jalur mutasi saldo invoice.
// Paid amount selalu dihitung ulang dari SUM pembayaran
// completed, tidak pernah di-increment manual.
// =======================================================

type Ledger struct {
	DB *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{DB: db}
}

type ApplyInput struct {
	AmountIDR   int64
	Method      paymentModel.PaymentMethod
	Notes       string
	ConfirmedBy *uuid.UUID
}

// lockInvoice mengambil baris invoice; FOR UPDATE hanya di postgres
// (sqlite dipakai di test dan tidak mendukung row lock).
func lockInvoice(tx *gorm.DB, invoiceID uuid.UUID) (*billingModel.Invoice, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var inv billingModel.Invoice
	if err := q.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("invoice", invoiceID.String())
		}
		return nil, err
	}
	return &inv, nil
}

// recomputePaid menghitung ulang saldo invoice dari ledger dan
// menyegel paid_at sekali saja saat lunas.
func recomputePaid(tx *gorm.DB, inv *billingModel.Invoice, now time.Time) error {
	var sum int64
	if err := tx.Model(&paymentModel.Payment{}).
		Where("payment_invoice_id = ? AND payment_status = ?", inv.InvoiceID, paymentModel.PaymentStatusCompleted).
		Select("COALESCE(SUM(payment_amount_idr), 0)").
		Scan(&sum).Error; err != nil {
		return err
	}

	inv.InvoicePaidAmountIDR = int(sum)
	// Lunas bersifat terminal: paid_at tidak pernah di-reset.
	if inv.InvoicePaidAt == nil && inv.InvoiceTotalAmountIDR > 0 && int(sum) >= inv.InvoiceTotalAmountIDR {
		inv.InvoicePaidAt = &now
	}

	return tx.Model(&billingModel.Invoice{}).
		Where("invoice_id = ?", inv.InvoiceID).
		Updates(map[string]interface{}{
			"invoice_paid_amount_idr": inv.InvoicePaidAmountIDR,
			"invoice_paid_at":         inv.InvoicePaidAt,
		}).Error
}

// ApplyPayment mencatat satu setoran dan memutakhirkan saldo invoice.
func (l *Ledger) ApplyPayment(invoiceID uuid.UUID, in ApplyInput) (*paymentModel.Payment, *billingModel.Invoice, error) {
	if in.AmountIDR <= 0 {
		return nil, nil, errs.Validation("payment amount must be greater than zero")
	}
	if !paymentModel.ValidPaymentMethod(string(in.Method)) {
		return nil, nil, errs.Validation("unknown payment method")
	}

	var (
		pay paymentModel.Payment
		inv *billingModel.Invoice
	)

	err := l.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		inv, err = lockInvoice(tx, invoiceID)
		if err != nil {
			return err
		}

		now := time.Now()
		remainingBefore := inv.RemainingAmountIDR()

		pay = paymentModel.Payment{
			PaymentInvoiceID:          invoiceID,
			PaymentAmountIDR:          in.AmountIDR,
			PaymentMethod:             in.Method,
			PaymentStatus:             paymentModel.PaymentStatusCompleted,
			PaymentConfirmedBy:        in.ConfirmedBy,
			PaymentConfirmedAt:        now,
			PaymentOverpaymentWarning: in.AmountIDR > int64(remainingBefore),
			PaymentNotes:              in.Notes,
		}
		if err := tx.Create(&pay).Error; err != nil {
			return err
		}

		return recomputePaid(tx, inv, now)
	})
	if err != nil {
		return nil, nil, err
	}

	if pay.PaymentOverpaymentWarning {
		log.Printf("[LEDGER] ⚠️ overpayment invoice=%s amount=%d", invoiceID, in.AmountIDR)
	}
	return &pay, inv, nil
}

// MarkPaymentFailed menandai pembayaran gagal (koreksi salah input).
// Saldo dihitung ulang; status lunas yang sudah tersegel tetap lunas.
func (l *Ledger) MarkPaymentFailed(paymentID uuid.UUID, notes string) (*paymentModel.Payment, *billingModel.Invoice, error) {
	var (
		pay paymentModel.Payment
		inv *billingModel.Invoice
	)

	err := l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pay, "payment_id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("payment", paymentID.String())
			}
			return err
		}
		if pay.PaymentStatus == paymentModel.PaymentStatusFailed {
			return errs.Conflict("payment is already marked failed")
		}

		var err error
		inv, err = lockInvoice(tx, pay.PaymentInvoiceID)
		if err != nil {
			return err
		}

		pay.PaymentStatus = paymentModel.PaymentStatusFailed
		if notes != "" {
			pay.PaymentNotes = notes
		}
		if err := tx.Model(&paymentModel.Payment{}).
			Where("payment_id = ?", paymentID).
			Updates(map[string]interface{}{
				"payment_status": pay.PaymentStatus,
				"payment_notes":  pay.PaymentNotes,
			}).Error; err != nil {
			return err
		}

		return recomputePaid(tx, inv, time.Now())
	})
	if err != nil {
		return nil, nil, err
	}
	return &pay, inv, nil
}

// InvoiceDetail mengembalikan invoice + riwayat pembayaran kronologis.
func (l *Ledger) InvoiceDetail(invoiceID uuid.UUID) (*billingModel.Invoice, []paymentModel.Payment, error) {
	var inv billingModel.Invoice
	if err := l.DB.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errs.NotFound("invoice", invoiceID.String())
		}
		return nil, nil, err
	}

	var history []paymentModel.Payment
	if err := l.DB.
		Where("payment_invoice_id = ?", invoiceID).
		Order("payment_confirmed_at ASC, payment_created_at ASC").
		Find(&history).Error; err != nil {
		return nil, nil, err
	}
	return &inv, history, nil
}
