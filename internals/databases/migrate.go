package database

import (
	"log"

	"gorm.io/gorm"

	billingModel "sekolahku_backend/internals/features/finance/billing/model"
	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
	paymentModel "sekolahku_backend/internals/features/finance/payments/model"
	reminderModel "sekolahku_backend/internals/features/finance/reminders/model"
	directoryModel "sekolahku_backend/internals/features/school/directory/model"
)

// AutoMigrate menjalankan migrasi skema untuk semua tabel domain.
// Dipakai oleh main (opsional via env) dan oleh test fixtures.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&directoryModel.SchoolClass{},
		&directoryModel.SchoolStudent{},
		&catalogModel.FeeItem{},
		&billingModel.FeeAssignmentBatch{},
		&billingModel.Invoice{},
		&paymentModel.Payment{},
		&reminderModel.ReminderLog{},
	)
}

func MustAutoMigrate(db *gorm.DB) {
	if err := AutoMigrate(db); err != nil {
		log.Fatalf("❌ Gagal migrasi skema: %v", err)
	}
	log.Println("✅ Skema termigrasi.")
}
