package domain

import (
	"errors"
	"time"
)

// RoleCitizen is the role every account starts with. Other role names are
// user-defined through the role management endpoints.
const RoleCitizen = "citizen"

var ErrInvalidInput = errors.New("username and password are required")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// User models a registered account. Province is empty until the user picks
// one; most chat operations require it to be set.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Province     string    `json:"province,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
