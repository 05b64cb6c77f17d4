// file: internals/features/school/sessions/sessions/service/repository.go
package service

import (
	"context"

	"github.com/google/uuid"

	classModel "schoolops_backend/internals/features/school/classes/classes/model"
	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
)

// Repository membungkus akses data sesi per kelas.
type Repository interface {
	// InClassTx: satu transaksi dengan baris kelas terkunci (FOR UPDATE).
	// Error dari fn → rollback semua.
	InClassTx(ctx context.Context, classID uuid.UUID, fn func(tx TxRepository) error) error
	// ReadClass: baca saja, tanpa lock.
	ReadClass(ctx context.Context, classID uuid.UUID, fn func(tx TxRepository) error) error
	// SessionClassID → ErrSessionNotFound kalau tidak ada.
	SessionClassID(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error)
}

// TxRepository terikat ke satu kelas di dalam satu transaksi.
type TxRepository interface {
	Class() classModel.ClassModel
	Syllabus(syllabusID uuid.UUID) (Syllabus, error)
	Rules() ([]pattern.Rule, error)
	Holidays() ([]pattern.DateRange, error)

	// Sessions: semua sesi kelas (tidak termasuk yang soft-deleted), urut sequence.
	Sessions() ([]*sessModel.ClassLessonSessionModel, error)
	// AttendedSessions: subset dari ids yang punya minimal satu absensi.
	AttendedSessions(ids []uuid.UUID) (map[uuid.UUID]bool, error)

	InsertSessions(rows []*sessModel.ClassLessonSessionModel) error
	UpdateSessions(rows []*sessModel.ClassLessonSessionModel) error
	DeleteSessions(ids []uuid.UUID) error
	InsertRescheduleLog(row *sessModel.ClassSessionRescheduleLogModel) error
}

func sessionIDs(rows []*sessModel.ClassLessonSessionModel) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ClassLessonSessionID)
	}
	return out
}
