// file: internals/features/school/sessions/sessions/service/generator.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
)

func ptr[T any](v T) *T { return &v }

/* =========================
   Draft builder
========================= */

// newDraft mengisi satu baris sesi dari slot (tanggal + rule) dan unit syllabus.
func newDraft(classID uuid.UUID, seq int, day time.Time, rule pattern.Rule, unit *sylModel.SyllabusUnitModel) *sessModel.ClassLessonSessionModel {
	s := &sessModel.ClassLessonSessionModel{
		ClassLessonSessionID:             uuid.New(),
		ClassLessonSessionClassID:        classID,
		ClassLessonSessionSequenceNumber: seq,
		ClassLessonSessionScheduledDate:  pattern.Day(day),
		ClassLessonSessionStatus:         sessModel.SessionScheduled,
	}
	applySlot(s, day, rule)
	if unit != nil {
		s.ClassLessonSessionLessonUnitID = ptr(unit.SyllabusUnitID)
		s.ClassLessonSessionLessonTitle = unit.SyllabusUnitLessonTitle
	}
	return s
}

func applySlot(s *sessModel.ClassLessonSessionModel, day time.Time, rule pattern.Rule) {
	s.ClassLessonSessionScheduledDate = pattern.Day(day)
	s.ClassLessonSessionStartTime = rule.Start
	s.ClassLessonSessionEndTime = rule.End
	if rule.ID != uuid.Nil {
		s.ClassLessonSessionRuleID = ptr(rule.ID)
	} else {
		s.ClassLessonSessionRuleID = nil
	}
}

/* =========================
   GenerateDrafts
========================= */

// GenerateDrafts memetakan tiap unit syllabus ke tanggal pertemuan.
// Unit pertama jatuh di `start` (kalau cocok pola) atau pertemuan berikutnya,
// unit selanjutnya selalu NextOccurrence dari tanggal unit sebelumnya.
func GenerateDrafts(classID uuid.UUID, start time.Time, syl Syllabus, pat pattern.Pattern) ([]*sessModel.ClassLessonSessionModel, error) {
	if pat.Empty() {
		return nil, ErrMissingSchedule
	}
	if err := syl.Validate(); err != nil {
		return nil, err
	}

	out := make([]*sessModel.ClassLessonSessionModel, 0, syl.TotalSessions)
	var (
		day  time.Time
		rule pattern.Rule
		err  error
	)
	for i := range syl.Units {
		unit := syl.Units[i]
		if i == 0 {
			day, rule, err = pat.FirstOnOrAfter(start)
		} else {
			day, rule, err = pat.NextOccurrence(day)
		}
		if err != nil {
			return nil, fmt.Errorf("generate unit #%d: %w", unit.SyllabusUnitSequenceNumber, err)
		}
		out = append(out, newDraft(classID, unit.SyllabusUnitSequenceNumber, day, rule, &unit))
	}
	return out, nil
}
