package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User roles.
const (
	RoleAdministrator = "administrator"
	RoleMember        = "member"
)

// User is an identity and profile record. The password hash is loaded for
// credential checks but never serialized to a client.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"fullName"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	Location     string    `db:"location" json:"location"`
	Avatar       string    `db:"avatar" json:"avatar"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// ProfileUpdate carries the mutable profile fields. Nil means "leave unchanged".
type ProfileUpdate struct {
	FullName *string
	Email    *string
	Phone    *string
	Location *string
}

// Claims defines the structure of the JWT claims.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
