package model

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleOwner:
		return true
	}
	return false
}

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

func (r Role) String() string {
	return string(r)
}
