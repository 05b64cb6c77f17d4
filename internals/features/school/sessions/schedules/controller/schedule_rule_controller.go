// file: internals/features/school/sessions/schedules/controller/schedule_rule_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "schoolops_backend/internals/features/school/classes/classes/model"
	d "schoolops_backend/internals/features/school/sessions/schedules/dto"
	m "schoolops_backend/internals/features/school/sessions/schedules/model"
	helper "schoolops_backend/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

type ClassScheduleRuleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *ClassScheduleRuleController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &ClassScheduleRuleController{DB: db, Validate: v}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// --- PG error mapping ---
type pgSQLErr interface {
	SQLState() string
	Error() string
}

func mapPGError(err error) (int, string) {
	// 23503 = foreign_key_violation
	// 23505 = unique_violation
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

func writePGError(c *fiber.Ctx, err error) error {
	code, msg := mapPGError(err)
	return helper.JsonError(c, code, msg)
}

/* =========================
   Handlers
   ========================= */

// GET /classes/:class_id/schedule-rules
func (ctl *ClassScheduleRuleController) List(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id invalid")
	}

	var rows []m.ClassScheduleRuleModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("class_schedule_rule_class_id = ?", classID).
		Order("class_schedule_rule_day_of_week ASC, class_schedule_rule_created_at ASC").
		Find(&rows).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonOK(c, "ok", d.FromRuleModels(rows))
}

// PUT /classes/:class_id/schedule-rules
// Sesi yang sudah dibuat tidak ikut diubah; pola baru dipakai cascade berikutnya.
func (ctl *ClassScheduleRuleController) Replace(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id invalid")
	}

	var req d.ReplaceScheduleRulesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if fields := req.Check(); fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	rows := req.ToModels(classID)
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var class classModel.ClassModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("class_id = ?", classID).
			Take(&class).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "class not found")
			}
			return err
		}
		if err := tx.Unscoped().
			Where("class_schedule_rule_class_id = ?", classID).
			Delete(&m.ClassScheduleRuleModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.FromFiberError(c, fe)
		}
		log.Printf("[ScheduleRule.Replace] class=%s: %v", classID, err)
		return writePGError(c, err)
	}

	log.Printf("[ScheduleRule.Replace] class=%s rules=%d", classID, len(rows))
	return helper.JsonUpdated(c, "schedule rules replaced", d.FromRuleModels(rows))
}
