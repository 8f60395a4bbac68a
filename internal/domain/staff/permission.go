package staff

// Operation names a gateway operation for capability checks. Authorization
// happens once, at the gateway, instead of per-handler role comparisons.
type Operation string

const (
	OpCheckIn        Operation = "attendance.check_in"
	OpCheckOut       Operation = "attendance.check_out"
	OpViewAttendance Operation = "attendance.view"
	OpListAttendance Operation = "attendance.list_all"
	OpSubmitLeave    Operation = "leave.submit"
	OpDecideLeave    Operation = "leave.decide"
	OpCancelLeave    Operation = "leave.cancel"
	OpViewLeave      Operation = "leave.view"
	OpViewBalance    Operation = "leave.view_balance"
	OpListLeave      Operation = "leave.list_all"
)

// operationRoles lists the roles allowed to perform each operation on
// records they do NOT own. Self-service access is handled separately by
// Allowed; an empty slice means owner-only.
var operationRoles = map[Operation][]Role{
	OpCheckIn:        {},
	OpCheckOut:       {},
	OpViewAttendance: {RoleHR, RoleAdmin},
	OpListAttendance: {RoleHR, RoleAdmin},
	OpSubmitLeave:    {},
	OpDecideLeave:    {RoleHR, RoleAdmin},
	OpCancelLeave:    {RoleAdmin},
	OpViewLeave:      {RoleHR, RoleAdmin},
	OpViewBalance:    {RoleHR, RoleAdmin},
	OpListLeave:      {RoleHR, RoleAdmin},
}

// selfService marks operations an actor may always perform on their own
// records. Decisions are deliberately excluded: HR cannot approve their
// own request any faster than anyone else's, but they do go through the
// same role gate.
var selfService = map[Operation]bool{
	OpCheckIn:        true,
	OpCheckOut:       true,
	OpViewAttendance: true,
	OpSubmitLeave:    true,
	OpCancelLeave:    true,
	OpViewLeave:      true,
	OpViewBalance:    true,
}

// Allowed is the single capability check. ownerID is the employee the
// target record belongs to; pass "" for operations without an owner
// (listings).
func Allowed(op Operation, actor Actor, ownerID string) bool {
	if selfService[op] && ownerID != "" && actor.EmployeeID == ownerID {
		return true
	}
	roles, ok := operationRoles[op]
	if !ok {
		return false
	}
	for _, r := range roles {
		if actor.Role == r {
			return true
		}
	}
	return false
}
