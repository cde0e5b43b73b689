// file: internals/features/school/directory/service/directory.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/directory/model"
	"sekolahku_backend/internals/helpers/errs"
)

// Directory adalah akses read-only ke direktori kelas & siswa.
// Core finance tidak pernah menulis ke tabel direktori.
type Directory struct {
	DB *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{DB: db}
}

// Cohort: hasil ekspansi pilihan grade/kelas menjadi kelas + roster siswa aktif.
type Cohort struct {
	ClassIDs []uuid.UUID
	Students []model.SchoolStudent
}

/* =======================================================
   ResolveCohort
   - grade dipilih → semua kelas aktif pada grade itu
   - class id eksplisit → harus resolve, kalau tidak: not found
   - hasil kelas dideduplikasi
======================================================= */

func (d *Directory) ResolveCohort(grades []int16, classIDs []uuid.UUID) (*Cohort, error) {
	if len(grades) == 0 && len(classIDs) == 0 {
		return nil, errs.Validation("empty selection: choose at least one grade or class")
	}

	seen := map[uuid.UUID]bool{}
	resolved := make([]uuid.UUID, 0, len(classIDs))

	// 1) Ekspansi grade → kelas aktif
	if len(grades) > 0 {
		var rows []model.SchoolClass
		if err := d.DB.
			Where("school_class_grade IN ? AND school_class_is_active = ?", grades, true).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			if !seen[r.SchoolClassID] {
				seen[r.SchoolClassID] = true
				resolved = append(resolved, r.SchoolClassID)
			}
		}
	}

	// 2) Kelas eksplisit → wajib resolve satu per satu
	if len(classIDs) > 0 {
		var rows []model.SchoolClass
		if err := d.DB.
			Where("school_class_id IN ?", classIDs).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		found := map[uuid.UUID]bool{}
		for _, r := range rows {
			found[r.SchoolClassID] = true
		}
		for _, id := range classIDs {
			if !found[id] {
				return nil, errs.NotFound("class", id.String())
			}
			if !seen[id] {
				seen[id] = true
				resolved = append(resolved, id)
			}
		}
	}

	if len(resolved) == 0 {
		return nil, errs.Validation("empty selection: no active class matched the chosen grades")
	}

	students, err := d.StudentsInClasses(resolved)
	if err != nil {
		return nil, err
	}

	return &Cohort{ClassIDs: resolved, Students: students}, nil
}

// StudentsInClasses: roster siswa aktif pada sekumpulan kelas.
func (d *Directory) StudentsInClasses(classIDs []uuid.UUID) ([]model.SchoolStudent, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}
	var rows []model.SchoolStudent
	if err := d.DB.
		Where("school_student_class_id IN ? AND school_student_is_active = ?", classIDs, true).
		Order("school_student_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
