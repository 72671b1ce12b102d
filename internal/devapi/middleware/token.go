package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the role claim.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Claims is the identity carried by a bearer token.
type Claims struct {
	UserID int
	Email  string
	Role   string
}

// IssueToken signs c as an HS256 JWT valid for ttl.
func IssueToken(secret string, c Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.Itoa(c.UserID),
		"email": c.Email,
		"role":  c.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return t.SignedString([]byte(secret))
}

// ParseToken verifies raw and returns its claims.
func ParseToken(secret, raw string) (Claims, error) {
	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, mc, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !tkn.Valid {
		return Claims{}, errors.New("token is not valid")
	}

	sub, err := mc.GetSubject()
	if err != nil {
		return Claims{}, err
	}
	id, err := strconv.Atoi(sub)
	if err != nil {
		return Claims{}, fmt.Errorf("subject %q: %w", sub, err)
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	return Claims{UserID: id, Email: email, Role: role}, nil
}
