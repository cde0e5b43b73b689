// file: internals/features/school/directory/service/directory_test.go
package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sekolahku_backend/internals/features/school/directory/model"
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
	if err := db.AutoMigrate(&model.SchoolClass{}, &model.SchoolStudent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedClass(t *testing.T, db *gorm.DB, name string, grade int16, active bool) model.SchoolClass {
	t.Helper()
	c := model.SchoolClass{
		SchoolClassName:     name,
		SchoolClassGrade:    grade,
		SchoolClassIsActive: active,
	}
	if err := db.Select("*").Create(&c).Error; err != nil {
		t.Fatalf("seed class %s: %v", name, err)
	}
	// gorm substitutes the default:true for a zero-valued bool on insert,
	// so an inactive seed must be persisted with an explicit update.
	if !active {
		if err := db.Model(&c).Update("school_class_is_active", false).Error; err != nil {
			t.Fatalf("seed class %s: %v", name, err)
		}
	}
	return c
}

func seedStudent(t *testing.T, db *gorm.DB, classID uuid.UUID, name string, active bool) model.SchoolStudent {
	t.Helper()
	s := model.SchoolStudent{
		SchoolStudentClassID:  classID,
		SchoolStudentName:     name,
		SchoolStudentIsActive: active,
	}
	if err := db.Select("*").Create(&s).Error; err != nil {
		t.Fatalf("seed student %s: %v", name, err)
	}
	if !active {
		if err := db.Model(&s).Update("school_student_is_active", false).Error; err != nil {
			t.Fatalf("seed student %s: %v", name, err)
		}
	}
	return s
}

func TestResolveCohort_EmptySelection(t *testing.T) {
	db := openTestDB(t)
	d := NewDirectory(db)

	_, err := d.ResolveCohort(nil, nil)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveCohort_GradeExpandsToActiveClasses(t *testing.T) {
	db := openTestDB(t)
	d := NewDirectory(db)

	c6a := seedClass(t, db, "6A", 6, true)
	c6b := seedClass(t, db, "6B", 6, true)
	seedClass(t, db, "6C-lama", 6, false)
	seedClass(t, db, "7A", 7, true)

	seedStudent(t, db, c6a.SchoolClassID, "Ahmad", true)
	seedStudent(t, db, c6b.SchoolClassID, "Siti", true)
	seedStudent(t, db, c6b.SchoolClassID, "Nonaktif", false)

	cohort, err := d.ResolveCohort([]int16{6}, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(cohort.ClassIDs) != 2 {
		t.Fatalf("expected 2 active classes, got %d", len(cohort.ClassIDs))
	}
	if len(cohort.Students) != 2 {
		t.Fatalf("expected 2 active students, got %d", len(cohort.Students))
	}
	// roster terurut nama
	if cohort.Students[0].SchoolStudentName != "Ahmad" {
		t.Fatalf("expected roster ordered by name, got %q first", cohort.Students[0].SchoolStudentName)
	}
}

func TestResolveCohort_UnknownExplicitClass(t *testing.T) {
	db := openTestDB(t)
	d := NewDirectory(db)

	seedClass(t, db, "6A", 6, true)

	_, err := d.ResolveCohort(nil, []uuid.UUID{uuid.New()})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestResolveCohort_DeduplicatesGradeAndClassOverlap(t *testing.T) {
	db := openTestDB(t)
	d := NewDirectory(db)

	c6a := seedClass(t, db, "6A", 6, true)
	seedStudent(t, db, c6a.SchoolClassID, "Ahmad", true)

	// grade 6 sudah memuat 6A; memilih 6A eksplisit tidak boleh menduplikasi
	cohort, err := d.ResolveCohort([]int16{6}, []uuid.UUID{c6a.SchoolClassID})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(cohort.ClassIDs) != 1 {
		t.Fatalf("expected deduplicated class list, got %d entries", len(cohort.ClassIDs))
	}
	if len(cohort.Students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(cohort.Students))
	}
}

func TestResolveCohort_GradeWithoutActiveClasses(t *testing.T) {
	db := openTestDB(t)
	d := NewDirectory(db)

	seedClass(t, db, "8A-lama", 8, false)

	_, err := d.ResolveCohort([]int16{8}, nil)
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for empty expansion, got %v", err)
	}
}
