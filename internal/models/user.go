package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// User represents a registered account. The organizer and super admin
// flags are capabilities, not roles: an organizer manages their own
// events, a super admin manages users platform-wide.
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"fullName" db:"full_name"`
	IsOrganizer  bool      `json:"isOrganizer" db:"is_organizer"`
	IsSuperAdmin bool      `json:"isSuperAdmin" db:"is_super_admin"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// UserCreateRequest represents the data needed to register a new user
type UserCreateRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	IsOrganizer bool   `json:"isOrganizer"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates user registration data
func (req *UserCreateRequest) Validate() error {
	if err := validateUsername(req.Username); err != nil {
		return err
	}

	if err := validatePassword(req.Password); err != nil {
		return err
	}

	if err := validateEmail(req.Email); err != nil {
		return err
	}

	if err := validateFullName(req.FullName); err != nil {
		return err
	}

	return nil
}

// validateUsername validates a username
func validateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	if strings.TrimSpace(username) != username {
		return errors.New("username cannot start or end with whitespace")
	}

	if len(username) < 3 || len(username) > 50 {
		return errors.New("username must be between 3 and 50 characters")
	}

	return nil
}

// validatePassword validates a password
func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return errors.New("password must be less than 128 characters")
	}

	return nil
}

// validateEmail validates an email address
func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}

	return nil
}

// validateFullName validates a full name
func validateFullName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("full name is required")
	}

	if len(name) > 100 {
		return errors.New("full name must be less than 100 characters")
	}

	return nil
}

// CanManageEvents returns true if the user can create and manage events
func (u *User) CanManageEvents() bool {
	return u.IsOrganizer || u.IsSuperAdmin
}

// CanManageUsers returns true if the user can manage other accounts
func (u *User) CanManageUsers() bool {
	return u.IsSuperAdmin
}
