// file: internals/features/finance/billing/service/generator.go
package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
	dirservice "sekolahku_backend/internals/features/school/directory/service"
	"sekolahku_backend/internals/helpers/errs"
)

/* =======================================================
   GENERATOR — satu batch = satu unit idempoten.
   Kunci konvergensi: unique index (invoice_batch_id,
   invoice_student_id) + INSERT ... ON CONFLICT DO NOTHING.
   Tidak ada rollback global: invoice yang sudah tercipta
   valid berdiri sendiri; retry dengan batch id yang sama
   melanjutkan sisanya.
======================================================= */

type Generator struct {
	DB        *gorm.DB
	Directory *dirservice.Directory
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{DB: db, Directory: dirservice.NewDirectory(db)}
}

type BatchResult struct {
	FeeBatchID        uuid.UUID
	StudentsCovered   int
	InvoicesCreated   int
	InvoicesExisting  int
	TotalCommittedIDR int64
	InvoiceIDs        []uuid.UUID
}

// GenerateBatch mengeksekusi satu putaran penagihan.
// Re-invoke dengan batch id yang sama: no-op untuk siswa yang
// sudah punya invoice (konvergen, bukan error).
func (g *Generator) GenerateBatch(batchID uuid.UUID) (*BatchResult, error) {
	// 1) Load batch
	var batch billingModel.FeeAssignmentBatch
	if err := g.DB.First(&batch, "fee_batch_id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("fee assignment batch", batchID.String())
		}
		return nil, err
	}

	// 2) Gerbang validasi (draft divalidasi utuh di sini, bukan per step wizard)
	if !batch.FeeBatchTermsAccepted {
		return nil, errs.Validation("terms must be accepted before generating invoices")
	}
	itemIDs, err := batch.FeeItemIDs()
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return nil, errs.Validation("batch must select at least one fee item")
	}
	classIDs, err := batch.ClassIDs()
	if err != nil {
		return nil, err
	}
	if len(classIDs) == 0 {
		return nil, errs.Validation("batch must target at least one class")
	}
	if batch.FeeBatchDueDate.Before(batch.FeeBatchStartDate) {
		return nil, errs.Validation("due date must be on or after start date")
	}

	// 3) Resolve cohort (read-only ke direktori)
	cohort, err := g.Directory.ResolveCohort(nil, classIDs)
	if err != nil {
		return nil, err
	}
	if len(cohort.Students) == 0 {
		return nil, errs.Validation("resolved cohort has no active students")
	}

	// 4) Snapshot fee item PADA SAAT INI — edit katalog berikutnya
	//    tidak boleh mengubah invoice yang terbit dari batch ini.
	var items []catalogModel.FeeItem
	if err := g.DB.Where("fee_item_id IN ?", itemIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	byID := map[uuid.UUID]catalogModel.FeeItem{}
	for _, it := range items {
		byID[it.FeeItemID] = it
	}
	snaps := make([]billingModel.FeeItemSnapshot, 0, len(itemIDs))
	total := 0
	for _, id := range itemIDs {
		it, ok := byID[id]
		if !ok {
			return nil, errs.Validation("fee item %s does not exist in the catalog", id)
		}
		snap := billingModel.SnapshotFeeItem(it)
		snaps = append(snaps, snap)
		total += snap.AmountIDR
	}
	snapJSON, err := billingModel.SnapshotsToJSON(snaps)
	if err != nil {
		return nil, err
	}

	// 5) Satu invoice per siswa. Tiap insert adalah unit atomik sendiri;
	//    kegagalan parsial menyisakan invoice yang sudah jadi (resume via retry).
	res := &BatchResult{FeeBatchID: batch.FeeBatchID}
	res.StudentsCovered = len(cohort.Students)

	succeeded := make([]string, 0, len(cohort.Students))
	failed := map[string]string{}

	for _, stu := range cohort.Students {
		inv := billingModel.Invoice{
			InvoiceBatchID:             batch.FeeBatchID,
			InvoiceStudentID:           stu.SchoolStudentID,
			InvoiceStudentNameSnapshot: stu.SchoolStudentName,
			InvoiceFeeSnapshots:        snapJSON,
			InvoiceTotalAmountIDR:      total,
			InvoiceIssueDate:           batch.FeeBatchStartDate,
			InvoiceDueDate:             batch.FeeBatchDueDate,
		}

		tx := g.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "invoice_batch_id"},
				{Name: "invoice_student_id"},
			},
			DoNothing: true,
		}).Create(&inv)

		if tx.Error != nil {
			failed[stu.SchoolStudentID.String()] = tx.Error.Error()
			continue
		}
		if tx.RowsAffected > 0 {
			res.InvoicesCreated++
			res.TotalCommittedIDR += int64(total)
		} else {
			// sudah pernah digenerate untuk siswa ini — konvergen, bukan error
			res.InvoicesExisting++
		}
		succeeded = append(succeeded, stu.SchoolStudentID.String())
	}

	// 6) Daftar id invoice final milik batch (existing + baru)
	var ids []uuid.UUID
	if err := g.DB.Model(&billingModel.Invoice{}).
		Where("invoice_batch_id = ?", batch.FeeBatchID).
		Order("invoice_created_at ASC").
		Pluck("invoice_id", &ids).Error; err != nil {
		return nil, err
	}
	res.InvoiceIDs = ids

	log.Printf("[GENERATE] batch=%s students=%d created=%d existing=%d failed=%d",
		batch.FeeBatchID, res.StudentsCovered, res.InvoicesCreated, res.InvoicesExisting, len(failed))

	if len(failed) > 0 {
		return res, &errs.PartialError{
			Reason:    "invoice generation partially failed; retry with the same batch id to resume",
			Succeeded: succeeded,
			Failed:    failed,
		}
	}
	return res, nil
}
