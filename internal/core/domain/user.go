package domain

import "time"

// UserStatus is the moderation state of a marketplace account.
type UserStatus string

const (
	UserPending   UserStatus = "PENDING"
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
	UserBanned    UserStatus = "BANNED"
	UserDeleted   UserStatus = "DELETED"
)

// Principal is the identity cached alongside a bearer token.
// User sessions carry userID, admin sessions carry adminID; LegacyUserID is
// the key older sessions were written with.
type Principal struct {
	UserID       int    `json:"userID,omitempty"`
	AdminID      int    `json:"adminID,omitempty"`
	LegacyUserID int    `json:"userId,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// ID returns whichever identifier the principal was stored with.
func (p Principal) ID() int {
	switch {
	case p.AdminID != 0:
		return p.AdminID
	case p.UserID != 0:
		return p.UserID
	default:
		return p.LegacyUserID
	}
}

// Credential is the cached bearer token plus principal for one role.
type Credential struct {
	Token     string
	Principal Principal
}

// User models a marketplace account as the API returns it.
type User struct {
	ID        int        `json:"userID"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Province  string     `json:"province,omitempty"`
	District  string     `json:"district,omitempty"`
	Ward      string     `json:"ward,omitempty"`
	Status    UserStatus `json:"status,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// AuthResponse is the body returned by every login/register endpoint.
type AuthResponse struct {
	Token  string `json:"token"`
	Type   string `json:"type,omitempty"`
	UserID int    `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
