// file: internals/helpers/auth/operator.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Keys untuk fiber Locals (diisi oleh middleware AuthJWT)
const (
	LocUserID    = "user_id"
	LocUserName  = "user_name"
	LocRoles     = "roles"
	LocRawClaims = "jwt_claims"
)

// ResolveOperatorID mengambil identitas operator (admin/bendahara) dari token.
// Dipakai sebagai confirmed_by pada pencatatan pembayaran.
func ResolveOperatorID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocUserID).(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "operator identity missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid operator identity")
	}
	return id, nil
}

// HasRole memeriksa role dari claims yang sudah dihidrasi middleware.
func HasRole(c *fiber.Ctx, want ...string) bool {
	roles, _ := c.Locals(LocRoles).([]string)
	for _, r := range roles {
		for _, w := range want {
			if strings.EqualFold(r, w) {
				return true
			}
		}
	}
	return false
}

// EnsureStaff: guard untuk endpoint admin (admin/bendahara/operator sekolah).
func EnsureStaff(c *fiber.Ctx, want ...string) error {
	if len(want) == 0 {
		return nil
	}
	if !HasRole(c, want...) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
	return nil
}
