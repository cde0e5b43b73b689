// file: internals/features/school/directory/model/school_class_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolClass merepresentasikan tabel school_classes.
// Data direktori: dikonsumsi read-only oleh core finance.
type SchoolClass struct {
	SchoolClassID uuid.UUID `gorm:"column:school_class_id;type:uuid;primaryKey" json:"school_class_id"`

	SchoolClassName  string `gorm:"column:school_class_name;type:varchar(60);not null;uniqueIndex:uniq_school_class_name" json:"school_class_name"`
	SchoolClassGrade int16  `gorm:"column:school_class_grade;type:smallint;not null;index" json:"school_class_grade"`

	SchoolClassIsActive bool `gorm:"column:school_class_is_active;not null;default:true;index" json:"school_class_is_active"`

	SchoolClassCreatedAt time.Time      `gorm:"column:school_class_created_at;not null;autoCreateTime" json:"school_class_created_at"`
	SchoolClassUpdatedAt time.Time      `gorm:"column:school_class_updated_at;not null;autoUpdateTime" json:"school_class_updated_at"`
	SchoolClassDeletedAt gorm.DeletedAt `gorm:"column:school_class_deleted_at;index" json:"-"`
}

func (SchoolClass) TableName() string { return "school_classes" }

func (m *SchoolClass) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolClassID == uuid.Nil {
		m.SchoolClassID = uuid.New()
	}
	m.SchoolClassName = strings.TrimSpace(m.SchoolClassName)
	return nil
}
