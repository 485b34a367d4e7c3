// AngelaMos | 2026
// identity.go

package core

const (
	RoleAdmin = "ADMIN"
	RoleOwner = "OWNER"
	RoleUser  = "USER"
)

// Identity is the authenticated principal decoded from a bearer token.
// UserID is a users.id for ADMIN/USER tokens and a property_owners.id
// for tokens issued through the owner login.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) Owns(ownerID string) bool {
	return i.UserID != "" && i.UserID == ownerID
}

// CanManage reports whether the principal may mutate a record owned by ownerID.
func (i Identity) CanManage(ownerID string) bool {
	return i.IsAdmin() || i.Owns(ownerID)
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	}
	return false
}
