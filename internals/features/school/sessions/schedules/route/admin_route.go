// file: internals/features/school/sessions/schedules/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ctrl "schoolops_backend/internals/features/school/sessions/schedules/controller"
	helper "schoolops_backend/internals/helpers"
)

// ScheduleAdminRoutes: pola mingguan per kelas + kalender libur.
func ScheduleAdminRoutes(admin fiber.Router, db *gorm.DB) {
	v := helper.NewValidator()
	rules := ctrl.New(db, v)
	holidays := ctrl.NewHoliday(db, v)

	grp := admin.Group("/classes/:class_id/schedule-rules")
	grp.Get("/", rules.List)
	grp.Put("/", rules.Replace)

	admin.Get("/holidays", holidays.List)
	admin.Post("/holidays", holidays.Create)
}
