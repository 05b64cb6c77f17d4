// file: internals/features/school/sessions/schedules/controller/holiday_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "schoolops_backend/internals/features/school/sessions/schedules/dto"
	m "schoolops_backend/internals/features/school/sessions/schedules/model"
	helper "schoolops_backend/internals/helpers"
)

type HolidayController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewHoliday(db *gorm.DB, v *validator.Validate) *HolidayController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &HolidayController{DB: db, Validate: v}
}

// GET /holidays?active=true
func (ctl *HolidayController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&m.HolidayModel{})
	if c.QueryBool("active", false) {
		q = q.Where("holiday_is_active = ?", true)
	}
	q = q.Session(&gorm.Session{})

	pg := helper.ResolvePaging(c, 50, 200)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return writePGError(c, err)
	}
	var rows []m.HolidayModel
	if err := q.Order("holiday_start_date ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return writePGError(c, err)
	}

	p := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage)
	p.Count = len(rows)
	return helper.JsonList(c, "ok", rows, &p)
}

// POST /holidays
func (ctl *HolidayController) Create(c *fiber.Ctx) error {
	var req d.CreateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	row, ok := req.ToModel()
	if !ok {
		return helper.JsonValidationError(c, map[string][]string{"holiday_end_date": {"gtefield=holiday_start_date"}})
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return writePGError(c, err)
	}
	return helper.JsonCreated(c, "holiday created", row)
}
