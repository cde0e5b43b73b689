// file: internals/features/finance/payments/service/ledger_test.go
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
	paymentModel "sekolahku_backend/internals/features/finance/payments/model"
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
	if err := db.AutoMigrate(&billingModel.Invoice{}, &paymentModel.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedInvoice: invoice terbit dengan total tertentu, belum ada pembayaran.
func seedInvoice(t *testing.T, db *gorm.DB, total int) billingModel.Invoice {
	t.Helper()
	snaps := []billingModel.FeeItemSnapshot{{
		FeeItemID: uuid.New(),
		Name:      "SPP Semester 1",
		Code:      "SPP-S1",
		Type:      "mandatory",
		AmountIDR: total,
	}}
	snapJSON, err := billingModel.SnapshotsToJSON(snaps)
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	inv := billingModel.Invoice{
		InvoiceBatchID:             uuid.New(),
		InvoiceStudentID:           uuid.New(),
		InvoiceStudentNameSnapshot: "Ahmad Fauzi",
		InvoiceFeeSnapshots:        snapJSON,
		InvoiceTotalAmountIDR:      total,
		InvoiceIssueDate:           time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		InvoiceDueDate:             time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}

func TestApplyPayment_PartialThenPaid(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	inv := seedInvoice(t, db, 3354000)

	// setoran pertama: SPP saja
	_, after, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
		AmountIDR: 2500000,
		Method:    paymentModel.PaymentMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if after.InvoicePaidAmountIDR != 2500000 {
		t.Fatalf("paid = %d, want 2500000", after.InvoicePaidAmountIDR)
	}
	if got := after.RemainingAmountIDR(); got != 854000 {
		t.Fatalf("remaining = %d, want 854000", got)
	}
	now := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	if got := after.Status(now); got != billingModel.InvoiceStatusPartial {
		t.Fatalf("status = %s, want partial", got)
	}
	if after.InvoicePaidAt != nil {
		t.Fatalf("paid_at set on partial payment")
	}

	// pelunasan
	_, after, err = ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
		AmountIDR: 854000,
		Method:    paymentModel.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if after.InvoicePaidAmountIDR != 3354000 {
		t.Fatalf("paid = %d, want 3354000", after.InvoicePaidAmountIDR)
	}
	if after.InvoicePaidAt == nil {
		t.Fatalf("paid_at must be sealed on full payment")
	}
	if got := after.Status(now); got != billingModel.InvoiceStatusPaid {
		t.Fatalf("status = %s, want paid", got)
	}
}

func TestApplyPayment_PaidAtSealedOnce(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	inv := seedInvoice(t, db, 1000000)

	_, after, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
		AmountIDR: 1000000,
		Method:    paymentModel.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	sealed := after.InvoicePaidAt
	if sealed == nil {
		t.Fatalf("paid_at not set")
	}

	time.Sleep(10 * time.Millisecond)

	// setoran lagi setelah lunas: tercatat, tapi paid_at tidak bergeser
	pay, after, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
		AmountIDR: 50000,
		Method:    paymentModel.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("extra payment: %v", err)
	}
	if !pay.PaymentOverpaymentWarning {
		t.Fatalf("expected overpayment warning on payment after settle")
	}
	if after.InvoicePaidAt == nil || !after.InvoicePaidAt.Equal(*sealed) {
		t.Fatalf("paid_at moved: was %v, now %v", sealed, after.InvoicePaidAt)
	}
}

func TestApplyPayment_InvalidAmount(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	inv := seedInvoice(t, db, 1000000)

	cases := []int64{0, -500}
	for _, amount := range cases {
		_, _, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
			AmountIDR: amount,
			Method:    paymentModel.PaymentMethodCash,
		})
		if !errs.IsValidation(err) {
			t.Fatalf("amount %d: expected validation error, got %v", amount, err)
		}
	}

	// tidak ada record pembayaran yang bocor
	var count int64
	if err := db.Model(&paymentModel.Payment{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected payments leaked %d records", count)
	}
}

func TestApplyPayment_UnknownInvoice(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)

	_, _, err := ledger.ApplyPayment(uuid.New(), ApplyInput{
		AmountIDR: 100000,
		Method:    paymentModel.PaymentMethodCash,
	})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApplyPayment_OverpaymentFlagged(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	inv := seedInvoice(t, db, 500000)

	pay, after, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
		AmountIDR: 600000,
		Method:    paymentModel.PaymentMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if !pay.PaymentOverpaymentWarning {
		t.Fatalf("expected overpayment warning")
	}
	if after.InvoicePaidAt == nil {
		t.Fatalf("overpaid invoice must still settle")
	}
}

func TestMarkPaymentFailed_RecomputesBalance(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	inv := seedInvoice(t, db, 3354000)

	pay, _, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
		AmountIDR: 2500000,
		Method:    paymentModel.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}

	// salah input: tandai gagal, saldo kembali nol
	failedPay, after, err := ledger.MarkPaymentFailed(pay.PaymentID, "salah input nominal")
	if err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if failedPay.PaymentStatus != paymentModel.PaymentStatusFailed {
		t.Fatalf("status = %s, want failed", failedPay.PaymentStatus)
	}
	if after.InvoicePaidAmountIDR != 0 {
		t.Fatalf("paid = %d after failed marker, want 0", after.InvoicePaidAmountIDR)
	}

	// penanda gagal idempoten-konflik
	if _, _, err := ledger.MarkPaymentFailed(pay.PaymentID, ""); err == nil {
		t.Fatalf("expected conflict on double fail")
	}
}

func TestMarkPaymentFailed_PaidStaysPaid(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	inv := seedInvoice(t, db, 1000000)

	pay, after, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
		AmountIDR: 1000000,
		Method:    paymentModel.PaymentMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	sealed := after.InvoicePaidAt
	if sealed == nil {
		t.Fatalf("invoice not sealed after full payment")
	}

	// setoran pelunasan ditandai gagal: lunas bersifat terminal,
	// paid_at tidak boleh bergeser apalagi kosong
	_, after, err = ledger.MarkPaymentFailed(pay.PaymentID, "salah input")
	if err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if after.InvoicePaidAt == nil || !after.InvoicePaidAt.Equal(*sealed) {
		t.Fatalf("paid_at moved after failing the settling payment: was %v, now %v", sealed, after.InvoicePaidAt)
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := after.Status(now); got != billingModel.InvoiceStatusPaid {
		t.Fatalf("status = %s after failing the settling payment, want paid", got)
	}
	if after.InvoicePaidAmountIDR != 0 {
		t.Fatalf("paid amount = %d, ledger sum must still recompute to 0", after.InvoicePaidAmountIDR)
	}

	var loaded billingModel.Invoice
	if err := db.First(&loaded, "invoice_id = ?", inv.InvoiceID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if loaded.InvoicePaidAt == nil {
		t.Fatalf("persisted paid_at cleared by failed marker")
	}
	if got := loaded.Status(now); got != billingModel.InvoiceStatusPaid {
		t.Fatalf("persisted status = %s, want paid", got)
	}
}

func TestLedger_MoneyConservation(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	inv := seedInvoice(t, db, 3000000)

	amounts := []int64{1000000, 500000, 1500000}
	for _, a := range amounts {
		if _, _, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
			AmountIDR: a,
			Method:    paymentModel.PaymentMethodCash,
		}); err != nil {
			t.Fatalf("payment %d: %v", a, err)
		}
	}

	var sum int64
	if err := db.Model(&paymentModel.Payment{}).
		Where("payment_invoice_id = ? AND payment_status = ?", inv.InvoiceID, paymentModel.PaymentStatusCompleted).
		Select("COALESCE(SUM(payment_amount_idr), 0)").
		Scan(&sum).Error; err != nil {
		t.Fatalf("sum: %v", err)
	}

	var loaded billingModel.Invoice
	if err := db.First(&loaded, "invoice_id = ?", inv.InvoiceID).Error; err != nil {
		t.Fatalf("load invoice: %v", err)
	}
	if int64(loaded.InvoicePaidAmountIDR) != sum {
		t.Fatalf("invoice paid (%d) != ledger sum (%d)", loaded.InvoicePaidAmountIDR, sum)
	}
}

func TestInvoiceDetail_ChronologicalHistory(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedger(db)
	inv := seedInvoice(t, db, 3354000)

	for _, a := range []int64{2500000, 854000} {
		if _, _, err := ledger.ApplyPayment(inv.InvoiceID, ApplyInput{
			AmountIDR: a,
			Method:    paymentModel.PaymentMethodCash,
		}); err != nil {
			t.Fatalf("payment %d: %v", a, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	_, history, err := ledger.InvoiceDetail(inv.InvoiceID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(history))
	}
	if history[0].PaymentAmountIDR != 2500000 || history[1].PaymentAmountIDR != 854000 {
		t.Fatalf("history not chronological: %d then %d",
			history[0].PaymentAmountIDR, history[1].PaymentAmountIDR)
	}
}
