// file: internals/features/school/sessions/sessions/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
)

var (
	ErrMissingSchedule          = errors.New("class has no weekly schedule rules")
	ErrScheduleSearchExhausted  = pattern.ErrScheduleSearchExhausted
	ErrAttendanceConflict       = errors.New("session already has attendance records")
	ErrSessionNotScheduled      = errors.New("session is not in scheduled status")
	ErrSessionNotFound          = errors.New("lesson session not found")
	ErrClassNotFound            = errors.New("class not found")
	ErrSessionsAlreadyGenerated = errors.New("class already has lesson sessions")
	ErrInvalidSyllabus          = errors.New("invalid syllabus")
	ErrEmptyReason              = errors.New("cancellation reason is required")
	ErrDuplicateSession         = errors.New("duplicate lesson session")
)

// InvariantViolation: jumlah sesi valid tidak sama dengan total syllabus
// dan tidak bisa dibetulkan otomatis (kelebihan sesi).
type InvariantViolation struct {
	ClassID    uuid.UUID `json:"class_id"`
	ValidCount int       `json:"valid_count"`
	Total      int       `json:"total"`
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("session count invariant violated for class %s: valid=%d total=%d",
		e.ClassID, e.ValidCount, e.Total)
}

// Excess = jumlah sesi valid yang melebihi total.
func (e *InvariantViolation) Excess() int { return e.ValidCount - e.Total }
