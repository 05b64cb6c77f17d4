// internals/features/school/sessions/sessions/model/user_attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserAttendanceStatus string

const (
	UserAttendancePresent UserAttendanceStatus = "present"
	UserAttendanceAbsent  UserAttendanceStatus = "absent"
	UserAttendanceExcused UserAttendanceStatus = "excused"
	UserAttendanceLate    UserAttendanceStatus = "late"
)

// Satu baris absensi sudah cukup untuk "mengunci" sesi dari cascade.
type UserAttendanceModel struct {
	UserAttendanceID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_attendance_id" json:"user_attendance_id"`
	UserAttendanceSessionID uuid.UUID            `gorm:"type:uuid;not null;column:user_attendance_session_id;index:idx_user_attendance_session" json:"user_attendance_session_id"`
	UserAttendanceStudentID uuid.UUID            `gorm:"type:uuid;not null;column:user_attendance_student_id;index:idx_user_attendance_student" json:"user_attendance_student_id"`
	UserAttendanceStatus    UserAttendanceStatus `gorm:"type:varchar(16);not null;default:present;column:user_attendance_status" json:"user_attendance_status"`

	UserAttendanceCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:user_attendance_created_at" json:"user_attendance_created_at"`
	UserAttendanceUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:user_attendance_updated_at" json:"user_attendance_updated_at"`
	UserAttendanceDeletedAt gorm.DeletedAt `gorm:"column:user_attendance_deleted_at;index" json:"user_attendance_deleted_at,omitempty"`
}

func (UserAttendanceModel) TableName() string { return "user_attendance" }
