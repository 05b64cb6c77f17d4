package details

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolops_backend/internals/configs"
	schedRoute "schoolops_backend/internals/features/school/sessions/schedules/route"
	sessRoute "schoolops_backend/internals/features/school/sessions/sessions/route"
	sessService "schoolops_backend/internals/features/school/sessions/sessions/service"
)

// SchoolAdminRoutes: engine sesi kelas + pola jadwal (group /api/a).
func SchoolAdminRoutes(admin fiber.Router, db *gorm.DB) {
	svc := sessService.New(
		sessService.NewGormRepository(db),
		sessService.WithHorizon(configs.SessionSearchHorizonDays),
		sessService.WithListener(sessService.LogListener{}),
	)
	log.Println("[INFO] Mounting lesson session routes...")
	sessRoute.LessonSessionAdminRoutes(admin, svc)

	log.Println("[INFO] Mounting schedule rule routes...")
	schedRoute.ScheduleAdminRoutes(admin, db)
}
