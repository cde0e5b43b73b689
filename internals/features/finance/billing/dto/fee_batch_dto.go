// file: internals/features/finance/billing/dto/fee_batch_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
)

////////////////////////////////////////////////////////////////////////////////
// FEE ASSIGNMENT BATCH — DTO
// Draft wizard: nilai diakumulasi lintas step di sisi klien,
// divalidasi utuh di boundary generate.
////////////////////////////////////////////////////////////////////////////////

type FeeBatchCreateDTO struct {
	FeeBatchName string `json:"fee_batch_name" validate:"required,max=120"`

	// Pilihan cohort: grade dan/atau kelas eksplisit.
	// Grade diekspansi ke kelas saat draft disimpan.
	Grades   []int16     `json:"grades,omitempty"`
	ClassIDs []uuid.UUID `json:"class_ids,omitempty"`

	FeeItemIDs []uuid.UUID `json:"fee_item_ids" validate:"required,min=1"`

	FeeBatchStartDate time.Time `json:"fee_batch_start_date" validate:"required"`
	FeeBatchDueDate   time.Time `json:"fee_batch_due_date" validate:"required"`

	FeeBatchReminderLeadDays  int16                          `json:"fee_batch_reminder_lead_days" validate:"min=0,max=90"`
	FeeBatchReminderFrequency billingModel.ReminderFrequency `json:"fee_batch_reminder_frequency" validate:"required,oneof=once daily weekly"`

	FeeBatchTermsAccepted bool `json:"fee_batch_terms_accepted"`
}

// Update (partial): hanya untuk draft yang belum digenerate.
type FeeBatchUpdateDTO struct {
	FeeBatchName *string `json:"fee_batch_name,omitempty" validate:"omitempty,max=120"`

	Grades     []int16     `json:"grades,omitempty"`
	ClassIDs   []uuid.UUID `json:"class_ids,omitempty"`
	FeeItemIDs []uuid.UUID `json:"fee_item_ids,omitempty"`

	FeeBatchStartDate *time.Time `json:"fee_batch_start_date,omitempty"`
	FeeBatchDueDate   *time.Time `json:"fee_batch_due_date,omitempty"`

	FeeBatchReminderLeadDays  *int16                          `json:"fee_batch_reminder_lead_days,omitempty" validate:"omitempty,min=0,max=90"`
	FeeBatchReminderFrequency *billingModel.ReminderFrequency `json:"fee_batch_reminder_frequency,omitempty" validate:"omitempty,oneof=once daily weekly"`

	FeeBatchTermsAccepted *bool `json:"fee_batch_terms_accepted,omitempty"`
}

type FeeBatchResponse struct {
	FeeBatchID   uuid.UUID `json:"fee_batch_id"`
	FeeBatchName string    `json:"fee_batch_name"`

	ClassIDs   []uuid.UUID `json:"class_ids"`
	FeeItemIDs []uuid.UUID `json:"fee_item_ids"`

	FeeBatchStartDate time.Time `json:"fee_batch_start_date"`
	FeeBatchDueDate   time.Time `json:"fee_batch_due_date"`

	FeeBatchReminderLeadDays  int16                          `json:"fee_batch_reminder_lead_days"`
	FeeBatchReminderFrequency billingModel.ReminderFrequency `json:"fee_batch_reminder_frequency"`

	FeeBatchTermsAccepted bool      `json:"fee_batch_terms_accepted"`
	FeeBatchCreatedAt     time.Time `json:"fee_batch_created_at"`
	FeeBatchUpdatedAt     time.Time `json:"fee_batch_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToFeeBatchResponse(m billingModel.FeeAssignmentBatch) FeeBatchResponse {
	classIDs, _ := m.ClassIDs()
	itemIDs, _ := m.FeeItemIDs()
	return FeeBatchResponse{
		FeeBatchID:   m.FeeBatchID,
		FeeBatchName: m.FeeBatchName,

		ClassIDs:   classIDs,
		FeeItemIDs: itemIDs,

		FeeBatchStartDate: m.FeeBatchStartDate,
		FeeBatchDueDate:   m.FeeBatchDueDate,

		FeeBatchReminderLeadDays:  m.FeeBatchReminderLeadDays,
		FeeBatchReminderFrequency: m.FeeBatchReminderFrequency,

		FeeBatchTermsAccepted: m.FeeBatchTermsAccepted,
		FeeBatchCreatedAt:     m.FeeBatchCreatedAt,
		FeeBatchUpdatedAt:     m.FeeBatchUpdatedAt,
	}
}

func ToFeeBatchResponses(list []billingModel.FeeAssignmentBatch) []FeeBatchResponse {
	out := make([]FeeBatchResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToFeeBatchResponse(m))
	}
	return out
}

// CreateDTO -> Model (class ids sudah hasil ekspansi cohort)
func FeeBatchCreateDTOToModel(d FeeBatchCreateDTO, resolvedClassIDs []uuid.UUID) (billingModel.FeeAssignmentBatch, error) {
	classJSON, err := billingModel.UUIDsToJSON(resolvedClassIDs)
	if err != nil {
		return billingModel.FeeAssignmentBatch{}, err
	}
	itemJSON, err := billingModel.UUIDsToJSON(d.FeeItemIDs)
	if err != nil {
		return billingModel.FeeAssignmentBatch{}, err
	}
	return billingModel.FeeAssignmentBatch{
		FeeBatchName:              strings.TrimSpace(d.FeeBatchName),
		FeeBatchClassIDs:          classJSON,
		FeeBatchFeeItemIDs:        itemJSON,
		FeeBatchStartDate:         d.FeeBatchStartDate,
		FeeBatchDueDate:           d.FeeBatchDueDate,
		FeeBatchReminderLeadDays:  d.FeeBatchReminderLeadDays,
		FeeBatchReminderFrequency: d.FeeBatchReminderFrequency,
		FeeBatchTermsAccepted:     d.FeeBatchTermsAccepted,
	}, nil
}

// ApplyFeeBatchUpdate: partial update field skalar.
// (cohort/fee item di-update oleh controller karena butuh resolusi)
func ApplyFeeBatchUpdate(m *billingModel.FeeAssignmentBatch, d FeeBatchUpdateDTO) {
	if d.FeeBatchName != nil {
		m.FeeBatchName = strings.TrimSpace(*d.FeeBatchName)
	}
	if d.FeeBatchStartDate != nil {
		m.FeeBatchStartDate = *d.FeeBatchStartDate
	}
	if d.FeeBatchDueDate != nil {
		m.FeeBatchDueDate = *d.FeeBatchDueDate
	}
	if d.FeeBatchReminderLeadDays != nil {
		m.FeeBatchReminderLeadDays = *d.FeeBatchReminderLeadDays
	}
	if d.FeeBatchReminderFrequency != nil {
		m.FeeBatchReminderFrequency = *d.FeeBatchReminderFrequency
	}
	if d.FeeBatchTermsAccepted != nil {
		m.FeeBatchTermsAccepted = *d.FeeBatchTermsAccepted
	}
}
