package constants

// Role yang dikenal pada token (hasil hidrasi middleware AuthJWT)
const (
	RoleAdmin     = "admin"
	RoleBendahara = "bendahara"
	RoleOperator  = "operator"
)

// StaffRoles: role yang boleh mengakses endpoint /api/a
var StaffRoles = []string{RoleAdmin, RoleBendahara, RoleOperator}
