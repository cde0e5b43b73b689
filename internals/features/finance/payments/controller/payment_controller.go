// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	billingDTO "sekolahku_backend/internals/features/finance/billing/dto"
	"sekolahku_backend/internals/features/finance/payments/dto"
	"sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
	authHelper "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

type PaymentHandler struct {
	DB *gorm.DB
}

// =======================================================
// RECORD PAYMENT
// POST /api/a/invoices/:id/payments
// =======================================================

func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid invoice id")
	}

	var in dto.PaymentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validator.New().Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var confirmedBy *uuid.UUID
	if opID, err := authHelper.ResolveOperatorID(c); err == nil {
		confirmedBy = &opID
	}

	ledger := service.NewLedger(h.DB)
	pay, inv, err := ledger.ApplyPayment(invoiceID, service.ApplyInput{
		AmountIDR:   in.PaymentAmountIDR,
		Method:      in.PaymentMethod,
		Notes:       in.PaymentNotes,
		ConfirmedBy: confirmedBy,
	})
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	return helper.JsonCreated(c, "payment recorded", fiber.Map{
		"payment": dto.ToPaymentResponse(*pay),
		"invoice": billingDTO.ToInvoiceResponse(*inv, time.Now()),
	})
}

// =======================================================
// MARK FAILED (koreksi)
// POST /api/a/payments/:id/fail
// =======================================================

func (h *PaymentHandler) MarkPaymentFailed(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payment id")
	}

	var body struct {
		Notes string `json:"notes"`
	}
	_ = c.BodyParser(&body)

	ledger := service.NewLedger(h.DB)
	pay, inv, err := ledger.MarkPaymentFailed(paymentID, body.Notes)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	return helper.JsonUpdated(c, "payment marked failed", fiber.Map{
		"payment": dto.ToPaymentResponse(*pay),
		"invoice": billingDTO.ToInvoiceResponse(*inv, time.Now()),
	})
}

// =======================================================
// INVOICE DETAIL + HISTORY
// GET /api/a/invoices/:id/payments
// =======================================================

func (h *PaymentHandler) InvoicePayments(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid invoice id")
	}

	ledger := service.NewLedger(h.DB)
	inv, history, err := ledger.InvoiceDetail(invoiceID)
	if err != nil {
		return helper.JsonError(c, errs.HTTPStatus(err), err.Error())
	}

	return helper.JsonOK(c, "invoice payments", dto.InvoiceDetailResponse{
		Invoice:  billingDTO.ToInvoiceResponse(*inv, time.Now()),
		Payments: dto.ToPaymentResponses(history),
	})
}
