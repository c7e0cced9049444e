// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates the administrator role.
	RoleAdmin Role = "admin"
	// RoleSupervisor indicates the user-moderation role.
	RoleSupervisor Role = "supervisor"
	// RolePimpinan indicates the senior oversight role, one tier above pengelola.
	RolePimpinan Role = "pimpinan"
	// RolePengelola indicates the manager role for products and fulfillment.
	RolePengelola Role = "pengelola"
	// RoleCustomer indicates a regular shopping customer.
	RoleCustomer Role = "customer"
)

// Level is the authorization tier derived from a role. Lower is more privileged.
type Level int

const (
	LevelAdmin      Level = 1
	LevelSupervisor Level = 2
	LevelPimpinan   Level = 3
	LevelPengelola  Level = 4
	LevelCustomer   Level = 5
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RolePimpinan, RolePengelola, RoleCustomer:
		return true
	default:
		return false
	}
}

// Level returns the authorization tier for the role. The mapping is total:
// unrecognized roles map to the customer tier and are never promoted.
func (r Role) Level() Level {
	switch r {
	case RoleAdmin:
		return LevelAdmin
	case RoleSupervisor:
		return LevelSupervisor
	case RolePimpinan:
		return LevelPimpinan
	case RolePengelola:
		return LevelPengelola
	default:
		return LevelCustomer
	}
}

// ParseRole converts a stored role string to a Role, falling back to
// RoleCustomer for unrecognized values.
func ParseRole(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleCustomer
	}

	return role
}

// Action identifies a privileged operation subject to the authorization table.
type Action string

const (
	ActionAddProduct          Action = "addProduct"
	ActionUpdateProduct       Action = "updateProduct"
	ActionDeleteProduct       Action = "deleteProduct"
	ActionAddSupervisor       Action = "addSupervisor"
	ActionPromoteOrDemoteUser Action = "promoteOrDemoteUser"
	ActionDeleteUser          Action = "deleteUser"
	ActionBlockUser           Action = "blockUser"
	ActionAdvanceOrder        Action = "advanceOrder"
)

// allowedRoles is the pure authorization mapping consulted by Allowed.
var allowedRoles = map[Action][]Role{
	ActionAddProduct:          {RoleAdmin, RolePengelola},
	ActionUpdateProduct:       {RoleAdmin, RolePengelola},
	ActionDeleteProduct:       {RoleAdmin, RolePengelola},
	ActionAddSupervisor:       {RoleAdmin},
	ActionPromoteOrDemoteUser: {RoleAdmin},
	ActionDeleteUser:          {RoleAdmin, RoleSupervisor},
	ActionBlockUser:           {RoleSupervisor},
	ActionAdvanceOrder:        {RoleAdmin, RolePengelola},
}

// Allowed reports whether the role may perform the action. Unknown actions are
// always denied.
func Allowed(action Action, role Role) bool {
	for _, allowed := range allowedRoles[action] {
		if role == allowed {
			return true
		}
	}

	return false
}

// RequiredRoles lists the roles permitted to perform the action, for error
// reporting.
func RequiredRoles(action Action) []Role {
	return allowedRoles[action]
}
