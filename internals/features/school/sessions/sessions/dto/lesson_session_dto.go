// file: internals/features/school/sessions/sessions/dto/lesson_session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	model "schoolops_backend/internals/features/school/sessions/sessions/model"
	"schoolops_backend/internals/features/school/sessions/sessions/service"
)

const dateLayout = "2006-01-02"

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CancelLessonSessionRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"required,max=500"`
}

func (r *CancelLessonSessionRequest) Normalize() {
	r.CancellationReason = strings.TrimSpace(r.CancellationReason)
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type LessonSessionResponse struct {
	ID                 uuid.UUID  `json:"class_lesson_session_id"`
	ClassID            uuid.UUID  `json:"class_lesson_session_class_id"`
	SequenceNumber     int        `json:"class_lesson_session_sequence_number"`
	LessonUnitID       *uuid.UUID `json:"class_lesson_session_lesson_unit_id,omitempty"`
	LessonTitle        string     `json:"class_lesson_session_lesson_title"`
	ScheduledDate      string     `json:"class_lesson_session_scheduled_date"`
	DayOfWeek          string     `json:"class_lesson_session_day_of_week"`
	StartTime          string     `json:"class_lesson_session_start_time"`
	EndTime            string     `json:"class_lesson_session_end_time"`
	Status             string     `json:"class_lesson_session_status"`
	CancellationReason *string    `json:"class_lesson_session_cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"class_lesson_session_cancelled_at,omitempty"`
}

func FromModel(m *model.ClassLessonSessionModel) LessonSessionResponse {
	return LessonSessionResponse{
		ID:                 m.ClassLessonSessionID,
		ClassID:            m.ClassLessonSessionClassID,
		SequenceNumber:     m.ClassLessonSessionSequenceNumber,
		LessonUnitID:       m.ClassLessonSessionLessonUnitID,
		LessonTitle:        m.ClassLessonSessionLessonTitle,
		ScheduledDate:      m.ClassLessonSessionScheduledDate.Format(dateLayout),
		DayOfWeek:          pattern.WeekdayOf(m.ClassLessonSessionScheduledDate).String(),
		StartTime:          m.ClassLessonSessionStartTime.String(),
		EndTime:            m.ClassLessonSessionEndTime.String(),
		Status:             string(m.ClassLessonSessionStatus),
		CancellationReason: m.ClassLessonSessionCancellationReason,
		CancelledAt:        m.ClassLessonSessionCancelledAt,
	}
}

func FromModels(rows []*model.ClassLessonSessionModel) []LessonSessionResponse {
	out := make([]LessonSessionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type RescheduledSessionResponse struct {
	LessonSessionResponse
	PreviousDate      string `json:"previous_scheduled_date"`
	PreviousStartTime string `json:"previous_start_time"`
	PreviousEndTime   string `json:"previous_end_time"`
}

type CancelLessonSessionResponse struct {
	Cancelled          LessonSessionResponse        `json:"cancelled"`
	Rescheduled        []RescheduledSessionResponse `json:"rescheduled"`
	Appended           []LessonSessionResponse      `json:"appended"`
	Audit              service.AuditResult          `json:"audit"`
	InvariantViolation *service.InvariantViolation  `json:"invariant_violation,omitempty"`
}

func FromCancelResult(res *service.CancelResult) CancelLessonSessionResponse {
	prev := make(map[uuid.UUID]service.Slot, len(res.Changes))
	for _, c := range res.Changes {
		prev[c.SessionID] = c.From
	}
	moved := make([]RescheduledSessionResponse, 0, len(res.Rescheduled))
	for _, s := range res.Rescheduled {
		from := prev[s.ClassLessonSessionID]
		moved = append(moved, RescheduledSessionResponse{
			LessonSessionResponse: FromModel(s),
			PreviousDate:          from.Date.Format(dateLayout),
			PreviousStartTime:     from.Start.String(),
			PreviousEndTime:       from.End.String(),
		})
	}
	return CancelLessonSessionResponse{
		Cancelled:          FromModel(res.Cancelled),
		Rescheduled:        moved,
		Appended:           FromModels(res.Appended),
		Audit:              res.Audit,
		InvariantViolation: res.Violation,
	}
}

type PurgeExcessResponse struct {
	Deleted []LessonSessionResponse `json:"deleted"`
	Audit   service.AuditResult     `json:"audit"`
}

func FromPurgeResult(res *service.PurgeResult) PurgeExcessResponse {
	return PurgeExcessResponse{Deleted: FromModels(res.Deleted), Audit: res.Audit}
}
