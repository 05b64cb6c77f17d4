// file: internals/features/school/sessions/sessions/controller/lesson_session_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	d "schoolops_backend/internals/features/school/sessions/sessions/dto"
	"schoolops_backend/internals/features/school/sessions/sessions/service"
	helper "schoolops_backend/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

type LessonSessionController struct {
	Svc      *service.Service
	Validate *validator.Validate
}

func New(svc *service.Service, v *validator.Validate) *LessonSessionController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &LessonSessionController{Svc: svc, Validate: v}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s invalid", name)
	}
	return id, nil
}

// writeServiceError memetakan error service → status + error_code.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingSchedule):
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, "MISSING_SCHEDULE", err.Error())
	case errors.Is(err, service.ErrScheduleSearchExhausted):
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, "SCHEDULE_SEARCH_EXHAUSTED", err.Error())
	case errors.Is(err, service.ErrInvalidSyllabus):
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, "INVALID_SYLLABUS", err.Error())
	case errors.Is(err, service.ErrEmptyReason):
		return helper.JsonValidationError(c, map[string][]string{"cancellation_reason": {"required"}})
	case errors.Is(err, service.ErrAttendanceConflict):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "ATTENDANCE_CONFLICT", err.Error())
	case errors.Is(err, service.ErrSessionNotScheduled):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "SESSION_NOT_SCHEDULED", err.Error())
	case errors.Is(err, service.ErrSessionsAlreadyGenerated):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "SESSIONS_ALREADY_GENERATED", err.Error())
	case errors.Is(err, service.ErrDuplicateSession):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "DUPLICATE_SESSION", err.Error())
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return helper.JsonError(c, fiber.StatusGatewayTimeout, "request timeout")
	}
	log.Printf("[LessonSessionController] unexpected error: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "internal error")
}

/* =========================
   Handlers
   ========================= */

// POST /classes/:class_id/lesson-sessions/generate
func (ctl *LessonSessionController) Generate(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	rows, err := ctl.Svc.GenerateSessions(c.UserContext(), classID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonCreated(c, "lesson sessions generated", d.FromModels(rows))
}

// GET /classes/:class_id/lesson-sessions?status=&page=&per_page=
func (ctl *LessonSessionController) List(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	rows, err := ctl.Svc.ListSessions(c.UserContext(), classID)
	if err != nil {
		return writeServiceError(c, err)
	}

	out := d.FromModels(rows)
	if st := strings.ToLower(strings.TrimSpace(c.Query("status"))); st != "" {
		filtered := out[:0]
		for _, r := range out {
			if r.Status == st {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}

	pg := helper.ResolvePaging(c, 50, 200)
	total := len(out)
	lo := min(pg.Offset, total)
	hi := min(pg.Offset+pg.Limit, total)
	page := out[lo:hi]

	p := helper.BuildPaginationFromPage(int64(total), pg.Page, pg.PerPage)
	p.Count = len(page)
	return helper.JsonList(c, "ok", page, &p)
}

// GET /classes/:class_id/lesson-sessions/audit
func (ctl *LessonSessionController) Audit(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	res, err := ctl.Svc.AuditSessionCount(c.UserContext(), classID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"audit":               res,
		"invariant_violation": res.Violation(),
	})
}

// POST /classes/:class_id/lesson-sessions/purge-excess
func (ctl *LessonSessionController) PurgeExcess(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	res, err := ctl.Svc.PurgeExcessSessions(c.UserContext(), classID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "excess sessions purged", d.FromPurgeResult(res))
}

// POST /lesson-sessions/:id/cancel
func (ctl *LessonSessionController) Cancel(c *fiber.Ctx) error {
	sessionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req d.CancelLessonSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Svc.CancelSession(c.UserContext(), sessionID, req.CancellationReason)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonUpdated(c, "lesson session cancelled", d.FromCancelResult(res))
}
