// file: internals/features/school/classes/classes/model/classes_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel merepresentasikan tabel `classes`.
// Baris ini juga jadi target row-lock saat cascade pembatalan.
type ClassModel struct {
	ClassID uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ClassName       string    `json:"class_name"        gorm:"column:class_name;type:varchar(160);not null"`
	ClassSyllabusID uuid.UUID `json:"class_syllabus_id" gorm:"column:class_syllabus_id;type:uuid;not null;index"`
	ClassStartDate  time.Time `json:"class_start_date"  gorm:"column:class_start_date;type:date;not null"`

	ClassCreatedAt time.Time      `json:"class_created_at"           gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at"           gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;index"`
}

func (ClassModel) TableName() string { return "classes" }
