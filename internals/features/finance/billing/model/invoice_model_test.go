// file: internals/features/finance/billing/model/invoice_model_test.go
package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInvoiceStatus_Derivation(t *testing.T) {
	due := date(2026, 2, 5)
	paidAt := date(2026, 1, 20)

	cases := []struct {
		name   string
		total  int
		paid   int
		paidAt *time.Time
		now    time.Time
		want   InvoiceStatus
	}{
		{"fresh invoice", 1000000, 0, nil, date(2026, 1, 10), InvoiceStatusPending},
		{"partial before due", 1000000, 400000, nil, date(2026, 1, 10), InvoiceStatusPartial},
		{"sealed paid", 1000000, 1000000, &paidAt, date(2026, 1, 21), InvoiceStatusPaid},
		{"paid by amount without seal", 1000000, 1000000, nil, date(2026, 1, 21), InvoiceStatusPaid},
		{"unpaid past due", 1000000, 0, nil, date(2026, 2, 6), InvoiceStatusOverdue},
		{"partial past due", 1000000, 400000, nil, date(2026, 2, 6), InvoiceStatusOverdue},
		{"due date itself is not overdue", 1000000, 0, nil, date(2026, 2, 5), InvoiceStatusPending},
		{"paid stays paid past due", 1000000, 1000000, &paidAt, date(2026, 3, 1), InvoiceStatusPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := Invoice{
				InvoiceTotalAmountIDR: tc.total,
				InvoicePaidAmountIDR:  tc.paid,
				InvoicePaidAt:         tc.paidAt,
				InvoiceDueDate:        due,
			}
			if got := inv.Status(tc.now); got != tc.want {
				t.Fatalf("status = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestInvoiceRemainingAmount_FlooredAtZero(t *testing.T) {
	inv := Invoice{InvoiceTotalAmountIDR: 500000, InvoicePaidAmountIDR: 600000}
	if got := inv.RemainingAmountIDR(); got != 0 {
		t.Fatalf("remaining = %d, overpaid invoice must floor at 0", got)
	}
}
