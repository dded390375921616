package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User roles.
const (
	RoleAdmin     = "ADMIN"
	RoleUser      = "USER"
	RoleSuperUser = "SUPER_USER"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleSuperUser:
		return true
	}
	return false
}

type User struct {
	ID             string    `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       *string   `db:"last_name" json:"last_name,omitempty"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	Password       string    `db:"password" json:"-"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture,omitempty"`
	Role           string    `db:"role" json:"role"`
	IsVerified     bool      `db:"is_verified" json:"is_verified"`
	IsDeleted      bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UserInfo is the identity projection attached to authenticated requests.
// The password column is never part of it.
type UserInfo struct {
	ID        string  `db:"id" json:"id"`
	Email     string  `db:"email" json:"email"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  *string `db:"last_name" json:"last_name"`
	Username  string  `db:"username" json:"username"`
	Role      string  `db:"role" json:"role"`
}

// UserInfoExtended is the detail and listing projection.
type UserInfoExtended struct {
	ID             string    `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       *string   `db:"last_name" json:"last_name"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	Role           string    `db:"role" json:"role"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture"`
	IsVerified     bool      `db:"is_verified" json:"is_verified"`
	IsDeleted      bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UserUpdate carries a partial profile update. Nil fields are not written,
// which keeps "not provided" distinct from "explicitly cleared".
type UserUpdate struct {
	FirstName      *string
	LastName       *string
	Username       *string
	Email          *string
	Role           *string
	IsVerified     *bool
	IsDeleted      *bool
	ProfilePicture *string
}

// Claims defines the structure of the JWT claims.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
