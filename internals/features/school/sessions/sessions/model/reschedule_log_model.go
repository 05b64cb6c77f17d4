// internals/features/school/sessions/sessions/model/reschedule_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Jejak tiap pembatalan yang sudah commit: sesi mana yang digeser & ditambah.
type ClassSessionRescheduleLogModel struct {
	ClassSessionRescheduleLogID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_session_reschedule_log_id" json:"class_session_reschedule_log_id"`
	ClassSessionRescheduleLogClassID            uuid.UUID      `gorm:"type:uuid;not null;index;column:class_session_reschedule_log_class_id" json:"class_session_reschedule_log_class_id"`
	ClassSessionRescheduleLogCancelledSessionID uuid.UUID      `gorm:"type:uuid;not null;column:class_session_reschedule_log_cancelled_session_id" json:"class_session_reschedule_log_cancelled_session_id"`
	ClassSessionRescheduleLogReason             string         `gorm:"type:text;not null;column:class_session_reschedule_log_reason" json:"class_session_reschedule_log_reason"`
	ClassSessionRescheduleLogMovedSequences     pq.Int64Array  `gorm:"type:int[];not null;default:'{}';column:class_session_reschedule_log_moved_sequence_numbers" json:"class_session_reschedule_log_moved_sequence_numbers"`
	ClassSessionRescheduleLogAppendedSequences  pq.Int64Array  `gorm:"type:int[];not null;default:'{}';column:class_session_reschedule_log_appended_sequence_numbers" json:"class_session_reschedule_log_appended_sequence_numbers"`
	ClassSessionRescheduleLogPayload            datatypes.JSON `gorm:"type:jsonb;column:class_session_reschedule_log_payload" json:"class_session_reschedule_log_payload,omitempty"`

	ClassSessionRescheduleLogCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:class_session_reschedule_log_created_at" json:"class_session_reschedule_log_created_at"`
}

func (ClassSessionRescheduleLogModel) TableName() string { return "class_session_reschedule_logs" }
