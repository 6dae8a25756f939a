package services

import (
	"errors"
	"fmt"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/Adityadhvn/Partier/internal/utils"
)

// UserRepository interface for user data operations
type UserRepository interface {
	Create(user *models.User) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]*models.User, error)
	SetOrganizer(id int, isOrganizer bool) (*models.User, error)
}

// AuthService handles registration, login and user management
type AuthService struct {
	userRepo UserRepository
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new account. Username and email must be unique;
// the password is stored as an Argon2id hash.
func (s *AuthService) Register(req *models.UserCreateRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", models.ErrDuplicateEntry)
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already in use", models.ErrDuplicateEntry)
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Create(&models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Email:        req.Email,
		FullName:     req.FullName,
		IsOrganizer:  req.IsOrganizer,
	})
}

// Login verifies a username/password pair and returns the account.
// Unknown usernames and wrong passwords both surface
// models.ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", models.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves an account by id
func (s *AuthService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ListUsers returns all accounts. Super admin only.
func (s *AuthService) ListUsers(requester *models.User) ([]*models.User, error) {
	if requester == nil || !requester.CanManageUsers() {
		return nil, models.ErrUnauthorized
	}

	return s.userRepo.List()
}

// SetOrganizer grants or revokes the organizer capability. Super
// admin only.
func (s *AuthService) SetOrganizer(id int, isOrganizer bool, requester *models.User) (*models.User, error) {
	if requester == nil || !requester.CanManageUsers() {
		return nil, models.ErrUnauthorized
	}

	return s.userRepo.SetOrganizer(id, isOrganizer)
}
