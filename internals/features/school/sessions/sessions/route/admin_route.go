// file: internals/features/school/sessions/sessions/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	ctrl "schoolops_backend/internals/features/school/sessions/sessions/controller"
	"schoolops_backend/internals/features/school/sessions/sessions/service"
	helper "schoolops_backend/internals/helpers"
	"schoolops_backend/internals/middlewares"
)

// LessonSessionAdminRoutes: generate, list, audit, purge, cancel.
func LessonSessionAdminRoutes(admin fiber.Router, svc *service.Service) {
	h := ctrl.New(svc, helper.NewValidator())

	cls := admin.Group("/classes/:class_id/lesson-sessions")
	cls.Get("/", h.List)
	cls.Get("/audit", h.Audit)
	cls.Post("/generate", middlewares.CascadeRateLimiter(), h.Generate)
	cls.Post("/purge-excess", middlewares.CascadeRateLimiter(), h.PurgeExcess)

	admin.Post("/lesson-sessions/:id/cancel", middlewares.CascadeRateLimiter(), h.Cancel)
}
