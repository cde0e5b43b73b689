// file: internals/helpers/errs/errs.go
// Taksonomi error domain untuk core finance.
// Controller memetakan tipe di sini ke status HTTP via HTTPStatus.
package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   ValidationError — input salah, jangan retry otomatis
=================================*/

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

/* ===============================
   NotFoundError — id tidak dikenal
=================================*/

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

/* ===============================
   ConflictError — tabrakan idempotency / unik
=================================*/

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

/* ===============================
   PartialError — operasi batch sebagian berhasil.
   Detail cukup untuk resume dengan batch id yang sama.
=================================*/

type PartialError struct {
	Reason    string
	Succeeded []string          // id unit yang berhasil
	Failed    map[string]string // id unit → alasan gagal
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s: %d succeeded, %d failed", e.Reason, len(e.Succeeded), len(e.Failed))
}

/* ===============================
   Mapping ke HTTP
=================================*/

func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		cf *ConflictError
		pe *PartialError
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.As(err, &nf):
		return fiber.StatusNotFound
	case errors.As(err, &cf):
		return fiber.StatusConflict
	case errors.As(err, &pe):
		return fiber.StatusMultiStatus
	default:
		return fiber.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func AsPartial(err error) (*PartialError, bool) {
	var pe *PartialError
	ok := errors.As(err, &pe)
	return pe, ok
}
