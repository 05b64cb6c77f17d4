// file: internals/features/school/syllabus/model/syllabus_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyllabusModel = kurikulum berurutan dengan jumlah sesi tetap.
type SyllabusModel struct {
	SyllabusID            uuid.UUID `json:"syllabus_id"             gorm:"column:syllabus_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SyllabusTitle         string    `json:"syllabus_title"          gorm:"column:syllabus_title;type:varchar(200);not null"`
	SyllabusTotalSessions int       `json:"syllabus_total_sessions" gorm:"column:syllabus_total_sessions;not null"`

	SyllabusCreatedAt time.Time      `json:"syllabus_created_at"           gorm:"column:syllabus_created_at;type:timestamptz;not null;autoCreateTime"`
	SyllabusUpdatedAt time.Time      `json:"syllabus_updated_at"           gorm:"column:syllabus_updated_at;type:timestamptz;not null;autoUpdateTime"`
	SyllabusDeletedAt gorm.DeletedAt `json:"syllabus_deleted_at,omitempty" gorm:"column:syllabus_deleted_at;index"`
}

func (SyllabusModel) TableName() string { return "syllabi" }

// SyllabusUnitModel = satu pertemuan di kurikulum (immutable setelah dibuat).
// ID unit dipakai sebagai lesson reference di sesi kelas.
type SyllabusUnitModel struct {
	SyllabusUnitID             uuid.UUID `json:"syllabus_unit_id"              gorm:"column:syllabus_unit_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SyllabusUnitSyllabusID     uuid.UUID `json:"syllabus_unit_syllabus_id"     gorm:"column:syllabus_unit_syllabus_id;type:uuid;not null;uniqueIndex:uq_syllabus_unit_seq"`
	SyllabusUnitSequenceNumber int       `json:"syllabus_unit_sequence_number" gorm:"column:syllabus_unit_sequence_number;not null;uniqueIndex:uq_syllabus_unit_seq"`
	SyllabusUnitLessonTitle    string    `json:"syllabus_unit_lesson_title"    gorm:"column:syllabus_unit_lesson_title;type:text;not null;default:''"`

	SyllabusUnitCreatedAt time.Time `json:"syllabus_unit_created_at" gorm:"column:syllabus_unit_created_at;type:timestamptz;not null;autoCreateTime"`
}

func (SyllabusUnitModel) TableName() string { return "syllabus_units" }
