// file: internals/seeds/seeder.go
package seeds

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogModel "sekolahku_backend/internals/features/finance/catalog/model"
	dirModel "sekolahku_backend/internals/features/school/directory/model"
)

// Run mengisi data dasar untuk lingkungan dev: kelas, siswa contoh,
// dan katalog biaya awal. Idempotent, aman dijalankan berulang.
func Run(db *gorm.DB) error {
	if err := seedClasses(db); err != nil {
		return err
	}
	if err := seedStudents(db); err != nil {
		return err
	}
	if err := seedFeeItems(db); err != nil {
		return err
	}
	log.Println("[SEED] ✅ base data ready")
	return nil
}

func seedClasses(db *gorm.DB) error {
	classes := []dirModel.SchoolClass{
		{SchoolClassName: "6A", SchoolClassGrade: 6},
		{SchoolClassName: "6B", SchoolClassGrade: 6},
		{SchoolClassName: "7A", SchoolClassGrade: 7},
	}
	for i := range classes {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "school_class_name"}},
			DoNothing: true,
		}).Create(&classes[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedStudents(db *gorm.DB) error {
	var class6A dirModel.SchoolClass
	if err := db.First(&class6A, "school_class_name = ?", "6A").Error; err != nil {
		return err
	}

	names := []string{"Ahmad Fauzi", "Siti Rahma", "Budi Santoso"}
	for _, name := range names {
		var count int64
		if err := db.Model(&dirModel.SchoolStudent{}).
			Where("school_student_name = ? AND school_student_class_id = ?", name, class6A.SchoolClassID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		s := dirModel.SchoolStudent{
			SchoolStudentClassID:  class6A.SchoolClassID,
			SchoolStudentName:     name,
			SchoolStudentIsActive: true,
		}
		if err := db.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedFeeItems(db *gorm.DB) error {
	items := []catalogModel.FeeItem{
		{
			FeeItemName:      "SPP Semester 1",
			FeeItemCode:      "SPP-S1",
			FeeItemType:      catalogModel.FeeItemTypeMandatory,
			FeeItemSemester:  catalogModel.FeeItemSemester1,
			FeeItemAmountIDR: 2500000,
			FeeItemIsActive:  true,
		},
		{
			FeeItemName:      "Asuransi Siswa",
			FeeItemCode:      "ASR",
			FeeItemType:      catalogModel.FeeItemTypeMandatory,
			FeeItemSemester:  catalogModel.FeeItemSemesterAll,
			FeeItemAmountIDR: 854000,
			FeeItemIsActive:  true,
		},
		{
			FeeItemName:      "Infaq Pembangunan",
			FeeItemCode:      "INFAQ",
			FeeItemType:      catalogModel.FeeItemTypeVoluntary,
			FeeItemSemester:  catalogModel.FeeItemSemesterAll,
			FeeItemAmountIDR: 500000,
			FeeItemIsActive:  true,
		},
	}
	for i := range items {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fee_item_code"}},
			DoNothing: true,
		}).Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
