package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
	"schoolops_backend/internals/helpers/dbtime"
)

func testPattern(days ...pattern.Weekday) pattern.Pattern {
	var rules []pattern.Rule
	for _, d := range days {
		rules = append(rules, pattern.Rule{Weekday: d, Start: dbtime.MustParse("08:00"), End: dbtime.MustParse("09:00")})
	}
	return pattern.New(rules)
}

func mkSession(classID uuid.UUID, seq int, d time.Time, st sessModel.SessionStatus) *sessModel.ClassLessonSessionModel {
	return &sessModel.ClassLessonSessionModel{
		ClassLessonSessionID:             uuid.New(),
		ClassLessonSessionClassID:        classID,
		ClassLessonSessionSequenceNumber: seq,
		ClassLessonSessionScheduledDate:  d,
		ClassLessonSessionStartTime:      dbtime.MustParse("08:00"),
		ClassLessonSessionEndTime:        dbtime.MustParse("09:00"),
		ClassLessonSessionStatus:         st,
	}
}

func TestPlanCancellation_DoesNotMutateInput(t *testing.T) {
	classID := uuid.New()
	pat := testPattern(pattern.Monday, pattern.Wednesday, pattern.Friday)
	in := []*sessModel.ClassLessonSessionModel{
		mkSession(classID, 1, pattern.Date(2025, 9, 1), sessModel.SessionScheduled),
		mkSession(classID, 2, pattern.Date(2025, 9, 5), sessModel.SessionScheduled),
		mkSession(classID, 3, pattern.Date(2025, 9, 12), sessModel.SessionScheduled),
	}

	plan, err := PlanCancellation(in[0].ClassLessonSessionID, in, nil, pat, "x", time.Now())
	require.NoError(t, err)

	assert.Equal(t, sessModel.SessionScheduled, in[0].ClassLessonSessionStatus)
	assert.Equal(t, pattern.Date(2025, 9, 5), in[1].ClassLessonSessionScheduledDate)

	require.Len(t, plan.Changes, 2)
	assert.Equal(t, pattern.Date(2025, 9, 3), plan.Changes[0].To.Date)
	assert.Equal(t, pattern.Date(2025, 9, 5), plan.Changes[1].To.Date)
}

func TestPlanCancellation_SkipsPinnedDates(t *testing.T) {
	classID := uuid.New()
	pat := testPattern(pattern.Monday, pattern.Wednesday, pattern.Friday)
	done := mkSession(classID, 4, pattern.Date(2025, 9, 3), sessModel.SessionCompleted)
	in := []*sessModel.ClassLessonSessionModel{
		mkSession(classID, 1, pattern.Date(2025, 9, 1), sessModel.SessionScheduled),
		// data lama: #2 jatuh setelah #4 yang sudah selesai
		mkSession(classID, 2, pattern.Date(2025, 9, 8), sessModel.SessionScheduled),
		mkSession(classID, 3, pattern.Date(2025, 9, 10), sessModel.SessionScheduled),
		done,
	}

	plan, err := PlanCancellation(in[0].ClassLessonSessionID, in, nil, pat, "x", time.Now())
	require.NoError(t, err)

	got := map[int]time.Time{}
	for _, s := range plan.Sessions {
		got[s.ClassLessonSessionSequenceNumber] = s.ClassLessonSessionScheduledDate
	}
	// 3 Sep dipegang #4, jadi #2 ke Jumat
	assert.Equal(t, pattern.Date(2025, 9, 5), got[2])
	assert.Equal(t, pattern.Date(2025, 9, 8), got[3])
	assert.Equal(t, pattern.Date(2025, 9, 3), got[4])
}

func TestPlanCancellation_Preconditions(t *testing.T) {
	classID := uuid.New()
	pat := testPattern(pattern.Monday)
	done := mkSession(classID, 1, pattern.Date(2025, 9, 1), sessModel.SessionCompleted)
	open := mkSession(classID, 2, pattern.Date(2025, 9, 8), sessModel.SessionScheduled)
	in := []*sessModel.ClassLessonSessionModel{done, open}

	_, err := PlanCancellation(done.ClassLessonSessionID, in, nil, pat, "x", time.Now())
	assert.ErrorIs(t, err, ErrSessionNotScheduled)

	_, err = PlanCancellation(open.ClassLessonSessionID, in, map[uuid.UUID]bool{open.ClassLessonSessionID: true}, pat, "x", time.Now())
	assert.ErrorIs(t, err, ErrAttendanceConflict)

	_, err = PlanCancellation(uuid.New(), in, nil, pat, "x", time.Now())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPlanReplenishment(t *testing.T) {
	classID := uuid.New()
	pat := testPattern(pattern.Tuesday)
	syl := Syllabus{TotalSessions: 3}
	in := []*sessModel.ClassLessonSessionModel{
		mkSession(classID, 1, pattern.Date(2025, 9, 2), sessModel.SessionScheduled),
		mkSession(classID, 2, pattern.Date(2025, 9, 9), sessModel.SessionCancelled),
		mkSession(classID, 3, pattern.Date(2025, 9, 16), sessModel.SessionCancelled),
	}

	out, err := PlanReplenishment(classID, pattern.Date(2025, 9, 1), in, syl, pat)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 4, out[0].ClassLessonSessionSequenceNumber)
	assert.Equal(t, pattern.Date(2025, 9, 9), out[0].ClassLessonSessionScheduledDate)
	assert.Equal(t, 5, out[1].ClassLessonSessionSequenceNumber)
	assert.Equal(t, pattern.Date(2025, 9, 16), out[1].ClassLessonSessionScheduledDate)

	t.Run("no valid sessions anchors at latest date", func(t *testing.T) {
		in := []*sessModel.ClassLessonSessionModel{
			mkSession(classID, 1, pattern.Date(2025, 9, 2), sessModel.SessionCancelled),
		}
		out, err := PlanReplenishment(classID, pattern.Date(2025, 9, 1), in, Syllabus{TotalSessions: 1}, pat)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, pattern.Date(2025, 9, 9), out[0].ClassLessonSessionScheduledDate)
	})

	t.Run("balanced is noop", func(t *testing.T) {
		out, err := PlanReplenishment(classID, time.Time{}, in[:1], Syllabus{TotalSessions: 1}, pat)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestAuditViolation(t *testing.T) {
	a := AuditResult{ValidCount: 5, Total: 4, Deficit: -1}
	v := a.Violation()
	require.NotNil(t, v)
	assert.Equal(t, 1, v.Excess())
	assert.Nil(t, AuditResult{ValidCount: 3, Total: 4, Deficit: 1}.Violation())
}

func TestSyllabusValidate(t *testing.T) {
	ok := Syllabus{TotalSessions: 2}
	ok.Units = append(ok.Units, unit(1), unit(2))
	assert.NoError(t, ok.Validate())

	gap := Syllabus{TotalSessions: 2}
	gap.Units = append(gap.Units, unit(1), unit(3))
	assert.ErrorIs(t, gap.Validate(), ErrInvalidSyllabus)

	short := Syllabus{TotalSessions: 3}
	short.Units = append(short.Units, unit(1), unit(2))
	assert.ErrorIs(t, short.Validate(), ErrInvalidSyllabus)
}

func unit(n int) sylModel.SyllabusUnitModel {
	return sylModel.SyllabusUnitModel{SyllabusUnitID: uuid.New(), SyllabusUnitSequenceNumber: n}
}
