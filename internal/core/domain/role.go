package domain

// Role is the permission level assigned to a user. Roles form a total order:
// USER < MODERATOR < ADMIN.
type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// rank maps a role to its position in the hierarchy. Unknown roles rank below
// USER so a corrupted or forged claim can never satisfy a role floor.
func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 0
	case RoleModerator:
		return 1
	case RoleAdmin:
		return 2
	default:
		return -1
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.rank() >= 0
}

// HasAccess reports whether an actor may perform an operation guarded by the
// given role floors.
//
// Owning the resource (ownerUsername == actorUsername, both non-empty) grants
// access unconditionally and takes precedence over any rank comparison.
// Otherwise the actor qualifies when its rank meets or exceeds the rank of
// any single required role, so the lowest entry in required acts as a floor.
// An empty required list leaves the operation open to every caller.
func HasAccess(actorRole Role, required []Role, ownerUsername, actorUsername string) bool {
	if ownerUsername != "" && actorUsername != "" && ownerUsername == actorUsername {
		return true
	}
	if len(required) == 0 {
		return true
	}
	rank := actorRole.rank()
	if rank < 0 {
		return false
	}
	for _, req := range required {
		if rank >= req.rank() {
			return true
		}
	}
	return false
}
