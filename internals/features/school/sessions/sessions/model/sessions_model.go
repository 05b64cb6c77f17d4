// file: internals/features/school/sessions/sessions/model/sessions_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolops_backend/internals/helpers/dbtime"
)

/*
=========================================================

	Enums
	=========================================================
*/
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

/*
=========================================================

	Model
	=========================================================
*/
type ClassLessonSessionModel struct {
	// PK
	ClassLessonSessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_lesson_session_id" json:"class_lesson_session_id"`

	// Kelas + urutan (unik per kelas)
	ClassLessonSessionClassID        uuid.UUID `gorm:"type:uuid;not null;column:class_lesson_session_class_id;uniqueIndex:uq_class_lesson_session_seq" json:"class_lesson_session_class_id"`
	ClassLessonSessionSequenceNumber int       `gorm:"not null;column:class_lesson_session_sequence_number;uniqueIndex:uq_class_lesson_session_seq" json:"class_lesson_session_sequence_number"`

	// Materi (unit syllabus)
	ClassLessonSessionLessonUnitID *uuid.UUID `gorm:"type:uuid;column:class_lesson_session_lesson_unit_id" json:"class_lesson_session_lesson_unit_id,omitempty"`
	ClassLessonSessionLessonTitle  string     `gorm:"type:text;not null;default:'';column:class_lesson_session_lesson_title" json:"class_lesson_session_lesson_title"`

	// Slot
	ClassLessonSessionScheduledDate time.Time  `gorm:"type:date;not null;column:class_lesson_session_scheduled_date;index" json:"class_lesson_session_scheduled_date"`
	ClassLessonSessionStartTime     dbtime.Tod `gorm:"type:time;not null;column:class_lesson_session_start_time" json:"class_lesson_session_start_time"`
	ClassLessonSessionEndTime       dbtime.Tod `gorm:"type:time;not null;column:class_lesson_session_end_time" json:"class_lesson_session_end_time"`
	ClassLessonSessionRuleID        *uuid.UUID `gorm:"type:uuid;column:class_lesson_session_rule_id" json:"class_lesson_session_rule_id,omitempty"`

	// Lifecycle
	ClassLessonSessionStatus             SessionStatus `gorm:"type:varchar(16);not null;default:'scheduled';column:class_lesson_session_status;index" json:"class_lesson_session_status"`
	ClassLessonSessionCancellationReason *string       `gorm:"type:text;column:class_lesson_session_cancellation_reason" json:"class_lesson_session_cancellation_reason,omitempty"`
	ClassLessonSessionCancelledAt        *time.Time    `gorm:"type:timestamptz;column:class_lesson_session_cancelled_at" json:"class_lesson_session_cancelled_at,omitempty"`

	// Audit
	ClassLessonSessionCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:class_lesson_session_created_at" json:"class_lesson_session_created_at"`
	ClassLessonSessionUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_lesson_session_updated_at" json:"class_lesson_session_updated_at"`
	ClassLessonSessionDeletedAt gorm.DeletedAt `gorm:"column:class_lesson_session_deleted_at;index" json:"class_lesson_session_deleted_at,omitempty"`
}

func (ClassLessonSessionModel) TableName() string { return "class_lesson_sessions" }

// IsValid: sesi yang dihitung ke jumlah pertemuan (belum dibatalkan).
func (m *ClassLessonSessionModel) IsValid() bool {
	return m.ClassLessonSessionStatus != SessionCancelled
}
