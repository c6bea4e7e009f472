package domain

import "time"

// Role is a closed variant; authorization code switches over it exhaustively
// instead of comparing ad hoc strings.
type Role string

const (
	RoleParent Role = "PARENT"
	RoleKid    Role = "KID"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole rejects anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleParent, RoleKid, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Parent carries the settlement-relevant slice of the parent account.
// CanCreate is flipped to false by the overdue sweep and restored by a
// successful settlement, blocking new chores and expenses in the meantime.
type Parent struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DeviceToken string    `json:"-"`
	CanCreate   bool      `json:"can_create"`
	CreatedAt   time.Time `json:"created_at"`
}

// Kid references its parent; the wallet references the kid by id.
type Kid struct {
	ID          int32     `json:"id"`
	ParentID    int32     `json:"parent_id"`
	Name        string    `json:"name"`
	DeviceToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
