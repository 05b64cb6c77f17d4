package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	classModel "schoolops_backend/internals/features/school/classes/classes/model"
	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
	"schoolops_backend/internals/features/school/sessions/sessions/service"
	"schoolops_backend/internals/features/school/sessions/sessions/storage/memory"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
	"schoolops_backend/internals/helpers/dbtime"
)

// 2025-09-01 = Senin
var firstMonday = pattern.Date(2025, time.September, 1)

type fixture struct {
	repo     *memory.Repository
	svc      *service.Service
	classID  uuid.UUID
	syllabus service.Syllabus
}

func eveningRules(days ...pattern.Weekday) []pattern.Rule {
	out := make([]pattern.Rule, 0, len(days))
	for _, d := range days {
		out = append(out, pattern.Rule{
			ID:      uuid.New(),
			Weekday: d,
			Start:   dbtime.MustParse("18:00"),
			End:     dbtime.MustParse("19:30"),
		})
	}
	return out
}

func newFixture(t *testing.T, total int, days ...pattern.Weekday) *fixture {
	t.Helper()
	repo := memory.New()

	syl := sylModel.SyllabusModel{SyllabusID: uuid.New(), SyllabusTitle: "Basic English", SyllabusTotalSessions: total}
	units := make([]sylModel.SyllabusUnitModel, 0, total)
	for i := 1; i <= total; i++ {
		units = append(units, sylModel.SyllabusUnitModel{
			SyllabusUnitID:             uuid.New(),
			SyllabusUnitSyllabusID:     syl.SyllabusID,
			SyllabusUnitSequenceNumber: i,
			SyllabusUnitLessonTitle:    fmt.Sprintf("Lesson %d", i),
		})
	}
	repo.AddSyllabus(syl, units)

	classID := uuid.New()
	repo.AddClass(classModel.ClassModel{
		ClassID:         classID,
		ClassName:       "EN-A1",
		ClassSyllabusID: syl.SyllabusID,
		ClassStartDate:  firstMonday,
	})
	repo.SetRules(classID, eveningRules(days...))

	return &fixture{
		repo:     repo,
		svc:      service.New(repo, service.WithListener(nil)),
		classID:  classID,
		syllabus: service.NewSyllabus(syl, units),
	}
}

func (f *fixture) generate(t *testing.T) []*sessModel.ClassLessonSessionModel {
	t.Helper()
	rows, err := f.svc.GenerateSessions(context.Background(), f.classID)
	require.NoError(t, err)
	return rows
}

func (f *fixture) bySeq(t *testing.T, seq int) *sessModel.ClassLessonSessionModel {
	t.Helper()
	for _, s := range f.repo.Sessions(f.classID) {
		if s.ClassLessonSessionSequenceNumber == seq {
			return s
		}
	}
	t.Fatalf("session #%d not found", seq)
	return nil
}

func validSessions(rows []*sessModel.ClassLessonSessionModel) []*sessModel.ClassLessonSessionModel {
	var out []*sessModel.ClassLessonSessionModel
	for _, s := range rows {
		if s.IsValid() {
			out = append(out, s)
		}
	}
	return out
}

// requireOrderedDates: tanggal sesi valid naik tegas mengikuti sequence.
func requireOrderedDates(t *testing.T, rows []*sessModel.ClassLessonSessionModel) {
	t.Helper()
	valid := validSessions(rows)
	for i := 1; i < len(valid); i++ {
		prev, cur := valid[i-1], valid[i]
		require.Truef(t, cur.ClassLessonSessionScheduledDate.After(prev.ClassLessonSessionScheduledDate),
			"#%d (%s) not after #%d (%s)",
			cur.ClassLessonSessionSequenceNumber, cur.ClassLessonSessionScheduledDate.Format("2006-01-02"),
			prev.ClassLessonSessionSequenceNumber, prev.ClassLessonSessionScheduledDate.Format("2006-01-02"))
	}
}

func day(m time.Month, d int) time.Time { return pattern.Date(2025, m, d) }
