package middleware

import (
	"github.com/gofiber/fiber/v2"

	"schoolops_backend/internals/constants"
)

// RequireRoles: lolos kalau salah satu role token ada di allowed.
// Dipasang setelah AuthJWT.
func RequireRoles(feature string, allowed ...string) fiber.Handler {
	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals(LocRolesGlobal).([]string)
		for _, r := range roles {
			if ok[r] {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
	}
}

// IsSchoolAdmin: admin sekolah atau owner.
func IsSchoolAdmin() fiber.Handler {
	return RequireRoles("jadwal & sesi kelas", constants.OwnerAndAdmin...)
}
