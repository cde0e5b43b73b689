// file: internals/features/school/directory/model/school_student_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolStudent merepresentasikan tabel school_students.
// Wali (guardian) dipakai sebagai penerima reminder tagihan.
type SchoolStudent struct {
	SchoolStudentID uuid.UUID `gorm:"column:school_student_id;type:uuid;primaryKey" json:"school_student_id"`

	SchoolStudentClassID uuid.UUID `gorm:"column:school_student_class_id;type:uuid;not null;index" json:"school_student_class_id"`

	SchoolStudentName           string     `gorm:"column:school_student_name;type:varchar(100);not null" json:"school_student_name"`
	SchoolStudentGuardianUserID *uuid.UUID `gorm:"column:school_student_guardian_user_id;type:uuid;index" json:"school_student_guardian_user_id,omitempty"`

	SchoolStudentIsActive bool `gorm:"column:school_student_is_active;not null;default:true;index" json:"school_student_is_active"`

	SchoolStudentCreatedAt time.Time      `gorm:"column:school_student_created_at;not null;autoCreateTime" json:"school_student_created_at"`
	SchoolStudentUpdatedAt time.Time      `gorm:"column:school_student_updated_at;not null;autoUpdateTime" json:"school_student_updated_at"`
	SchoolStudentDeletedAt gorm.DeletedAt `gorm:"column:school_student_deleted_at;index" json:"-"`
}

func (SchoolStudent) TableName() string { return "school_students" }

func (m *SchoolStudent) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolStudentID == uuid.Nil {
		m.SchoolStudentID = uuid.New()
	}
	m.SchoolStudentName = strings.TrimSpace(m.SchoolStudentName)
	return nil
}
