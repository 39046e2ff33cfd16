package lookup

// Role is the numeric account role stored in accounts.role.
type Role int

const (
	RoleBuyer  Role = 1
	RoleVendor Role = 2
	RoleAdmin  Role = 3
)

// RoleName maps a role id to its display name. Unknown ids are buyers.
func RoleName(id int) string {
	switch Role(id) {
	case RoleVendor:
		return "Vendor"
	case RoleAdmin:
		return "Admin"
	default:
		return "Buyer"
	}
}

func (r Role) String() string {
	return RoleName(int(r))
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return MatchesAny(r, []Role{RoleBuyer, RoleVendor, RoleAdmin})
}
