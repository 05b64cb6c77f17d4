package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "schoolops_backend/internals/features/school/classes/classes/model"
	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	"schoolops_backend/internals/features/school/sessions/sessions/route"
	"schoolops_backend/internals/features/school/sessions/sessions/service"
	"schoolops_backend/internals/features/school/sessions/sessions/storage/memory"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
	"schoolops_backend/internals/helpers/dbtime"
)

type env struct {
	app     *fiber.App
	repo    *memory.Repository
	classID uuid.UUID
}

func setup(t *testing.T, total int, days ...pattern.Weekday) *env {
	t.Helper()
	repo := memory.New()

	syl := sylModel.SyllabusModel{SyllabusID: uuid.New(), SyllabusTotalSessions: total}
	var units []sylModel.SyllabusUnitModel
	for i := 1; i <= total; i++ {
		units = append(units, sylModel.SyllabusUnitModel{
			SyllabusUnitID:             uuid.New(),
			SyllabusUnitSequenceNumber: i,
			SyllabusUnitLessonTitle:    fmt.Sprintf("Unit %d", i),
		})
	}
	repo.AddSyllabus(syl, units)

	classID := uuid.New()
	repo.AddClass(classModel.ClassModel{ClassID: classID, ClassSyllabusID: syl.SyllabusID, ClassStartDate: pattern.Date(2025, time.September, 1)})
	var rules []pattern.Rule
	for _, d := range days {
		rules = append(rules, pattern.Rule{ID: uuid.New(), Weekday: d, Start: dbtime.MustParse("18:00"), End: dbtime.MustParse("19:30")})
	}
	repo.SetRules(classID, rules)

	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	route.LessonSessionAdminRoutes(app.Group("/api/a"), service.New(repo, service.WithListener(nil)))
	return &env{app: app, repo: repo, classID: classID}
}

type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      json.RawMessage     `json:"data"`
}

func (e *env) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out envelope
	require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func (e *env) sessionsPath() string {
	return "/api/a/classes/" + e.classID.String() + "/lesson-sessions"
}

func TestGenerateAndList(t *testing.T) {
	e := setup(t, 6, pattern.Monday, pattern.Wednesday, pattern.Friday)

	code, res := e.do(t, http.MethodPost, e.sessionsPath()+"/generate", nil)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, res.Success)

	var created []map[string]any
	require.NoError(t, sonic.Unmarshal(res.Data, &created))
	require.Len(t, created, 6)
	assert.Equal(t, "2025-09-01", created[0]["class_lesson_session_scheduled_date"])
	assert.Equal(t, "monday", created[0]["class_lesson_session_day_of_week"])
	assert.Equal(t, "18:00:00", created[0]["class_lesson_session_start_time"])

	code, res = e.do(t, http.MethodGet, e.sessionsPath()+"?per_page=4&page=2", nil)
	require.Equal(t, http.StatusOK, code)
	var page []map[string]any
	require.NoError(t, sonic.Unmarshal(res.Data, &page))
	assert.Len(t, page, 2)

	code, res = e.do(t, http.MethodPost, e.sessionsPath()+"/generate", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "SESSIONS_ALREADY_GENERATED", res.ErrorCode)
}

func TestGenerate_MissingSchedule(t *testing.T) {
	e := setup(t, 6)
	code, res := e.do(t, http.MethodPost, e.sessionsPath()+"/generate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "MISSING_SCHEDULE", res.ErrorCode)
	assert.False(t, res.Success)
}

func TestCancel(t *testing.T) {
	e := setup(t, 6, pattern.Monday, pattern.Wednesday, pattern.Friday)
	svc := service.New(e.repo, service.WithListener(nil))
	rows, err := svc.GenerateSessions(context.Background(), e.classID)
	require.NoError(t, err)
	target := rows[2].ClassLessonSessionID
	path := "/api/a/lesson-sessions/" + target.String() + "/cancel"

	t.Run("validation", func(t *testing.T) {
		code, res := e.do(t, http.MethodPost, path, map[string]string{"cancellation_reason": "  "})
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Contains(t, res.Errors, "cancellation_reason")
	})

	t.Run("bad id", func(t *testing.T) {
		code, _ := e.do(t, http.MethodPost, "/api/a/lesson-sessions/nope/cancel", map[string]string{"cancellation_reason": "x"})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("unknown session", func(t *testing.T) {
		code, res := e.do(t, http.MethodPost, "/api/a/lesson-sessions/"+uuid.NewString()+"/cancel", map[string]string{"cancellation_reason": "x"})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "NOT_FOUND", res.ErrorCode)
	})

	t.Run("ok", func(t *testing.T) {
		code, res := e.do(t, http.MethodPost, path, map[string]string{"cancellation_reason": "teacher sick"})
		require.Equal(t, http.StatusOK, code)

		var body struct {
			Cancelled map[string]any      `json:"cancelled"`
			Appended  []map[string]any    `json:"appended"`
			Audit     service.AuditResult `json:"audit"`
		}
		require.NoError(t, sonic.Unmarshal(res.Data, &body))
		assert.Equal(t, "cancelled", body.Cancelled["class_lesson_session_status"])
		assert.Equal(t, "teacher sick", body.Cancelled["class_lesson_session_cancellation_reason"])
		require.Len(t, body.Appended, 1)
		assert.EqualValues(t, 7, body.Appended[0]["class_lesson_session_sequence_number"])
		assert.Equal(t, 6, body.Audit.ValidCount)
		assert.Zero(t, body.Audit.Deficit)
	})

	t.Run("already cancelled", func(t *testing.T) {
		code, res := e.do(t, http.MethodPost, path, map[string]string{"cancellation_reason": "again"})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "SESSION_NOT_SCHEDULED", res.ErrorCode)
	})
}

func TestCancel_AttendanceConflict(t *testing.T) {
	e := setup(t, 4, pattern.Tuesday)
	rows, err := service.New(e.repo, service.WithListener(nil)).GenerateSessions(context.Background(), e.classID)
	require.NoError(t, err)
	e.repo.AddAttendance(rows[1].ClassLessonSessionID)

	code, res := e.do(t, http.MethodPost, "/api/a/lesson-sessions/"+rows[1].ClassLessonSessionID.String()+"/cancel",
		map[string]string{"cancellation_reason": "x"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "ATTENDANCE_CONFLICT", res.ErrorCode)
}

func TestCancel_ScheduleSearchExhausted(t *testing.T) {
	e := setup(t, 4, pattern.Tuesday)
	rows, err := service.New(e.repo, service.WithListener(nil)).GenerateSessions(context.Background(), e.classID)
	require.NoError(t, err)
	e.repo.SetRules(e.classID, nil)

	code, res := e.do(t, http.MethodPost, "/api/a/lesson-sessions/"+rows[0].ClassLessonSessionID.String()+"/cancel",
		map[string]string{"cancellation_reason": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "SCHEDULE_SEARCH_EXHAUSTED", res.ErrorCode)
}

func TestAuditAndPurge(t *testing.T) {
	e := setup(t, 4, pattern.Tuesday)
	_, err := service.New(e.repo, service.WithListener(nil)).GenerateSessions(context.Background(), e.classID)
	require.NoError(t, err)

	code, res := e.do(t, http.MethodGet, e.sessionsPath()+"/audit", nil)
	require.Equal(t, http.StatusOK, code)
	var audit struct {
		Audit     service.AuditResult          `json:"audit"`
		Violation *service.InvariantViolation `json:"invariant_violation"`
	}
	require.NoError(t, sonic.Unmarshal(res.Data, &audit))
	assert.Equal(t, 4, audit.Audit.ValidCount)
	assert.Zero(t, audit.Audit.Deficit)
	assert.Nil(t, audit.Violation)

	code, _ = e.do(t, http.MethodPost, e.sessionsPath()+"/purge-excess", nil)
	assert.Equal(t, http.StatusOK, code)

	code, res = e.do(t, http.MethodGet, "/api/a/classes/"+uuid.NewString()+"/lesson-sessions/audit", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", res.ErrorCode)
}
