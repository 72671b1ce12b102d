package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role selects which credential slot (if any) a request uses.
type Role string

const (
	RoleNone  Role = ""
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal role labels as the upstream API reports them.
const (
	PrincipalUser  = "USER"
	PrincipalAdmin = "ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles returns every role that owns a credential slot.
func Roles() []Role {
	return []Role{RoleUser, RoleAdmin}
}

// Valid reports whether r owns a credential slot.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// ParseRole converts a CLI/config string into a Role, ignoring case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleUser, RoleAdmin:
		return r, nil
	case RoleNone, "none":
		return RoleNone, nil
	}
	return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}
