package user

import (
	"errors"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("user not found")

// raised on the username unique constraint.
var ErrUsernameTaken = errors.New("username already taken")

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=150"`
	Password        string `json:"password" binding:"required,min=1,max=150"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Password is optional here: an empty password keeps the current one.
// ConfirmPassword only has to match when a new password is supplied.
type UpdateProfileRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=150"`
	Password        string `json:"password" binding:"omitempty,max=150"`
	ConfirmPassword string `json:"confirmPassword" binding:"eqfield=Password"`
}
