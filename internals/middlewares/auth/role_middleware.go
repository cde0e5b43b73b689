// file: internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	authHelper "sekolahku_backend/internals/helpers/auth"
)

// OnlyStaff menolak request tanpa role staf keuangan.
// Dipasang setelah AuthJWT di group admin.
func OnlyStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authHelper.HasRole(c, constants.StaffRoles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "forbidden: staff role required",
			})
		}
		return c.Next()
	}
}

// OnlyRoles memungkinkan akses jika user memiliki salah satu role.
func OnlyRoles(message string, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authHelper.HasRole(c, allowed...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		}
		return c.Next()
	}
}
