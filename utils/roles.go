package utils

import "p9e.in/brokerdesk/models"

// roleRank orders roles by privilege, higher is more privileged. Guests and
// customers sit at the bottom and never reach the back office.
var roleRank = map[models.Role]int{
	models.RoleAdmin:    4,
	models.RoleStaff:    3,
	models.RoleBroker:   2,
	models.RoleCustomer: 1,
	models.RoleGuest:    0,
}

// Outranks reports whether a is strictly more privileged than b. Unknown
// roles rank below everything.
func Outranks(a, b models.Role) bool {
	return roleRank[a] > roleRank[b]
}

// CanAssignRole reports whether an actor may hand out the target role.
// Admins assign anything; everyone else only roles they strictly outrank.
func CanAssignRole(actor, target models.Role) bool {
	if actor == models.RoleAdmin {
		return true
	}
	return Outranks(actor, target)
}

// CanEditUser reports whether an actor may modify another account. An account
// is editable by admins and by anyone who strictly outranks it.
func CanEditUser(actor, subject models.Role) bool {
	if actor == models.RoleAdmin {
		return true
	}
	return Outranks(actor, subject)
}
