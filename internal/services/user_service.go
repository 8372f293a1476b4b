package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olgakuzina/task-manager/internal/constants"
	apperrors "github.com/olgakuzina/task-manager/internal/errors"
	"github.com/olgakuzina/task-manager/internal/models"
	"github.com/olgakuzina/task-manager/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// UserService handles user account business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the registration form.
type RegisterInput struct {
	FirstName            string
	LastName             string
	Username             string
	Password             string
	PasswordConfirmation string
}

// UpdateUserInput represents the profile edit form. An empty Password
// leaves the stored credential unchanged.
type UpdateUserInput struct {
	FirstName            string
	LastName             string
	Username             string
	Password             string
	PasswordConfirmation string
}

// Register validates the form and creates a new user. Registration is the
// one unauthenticated mutation in the system.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Username = strings.TrimSpace(input.Username)

	verr := apperrors.NewValidationError()
	s.validateNames(verr, input.FirstName, input.LastName)
	if err := s.validateUsername(verr, input.Username, 0); err != nil {
		return nil, err
	}
	s.validatePassword(verr, input.Password, input.PasswordConfirmation)
	if verr.Fields.HasErrors() {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// List returns all users. The user directory is public.
func (s *UserService) List() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns a user by ID.
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Update edits a user profile. Only the subject user may edit themselves.
func (s *UserService) Update(actorID, targetID uint64, input UpdateUserInput) (*models.User, error) {
	if actorID != targetID {
		return nil, apperrors.ErrPermissionDenied
	}

	user, err := s.Get(targetID)
	if err != nil {
		return nil, err
	}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Username = strings.TrimSpace(input.Username)

	verr := apperrors.NewValidationError()
	s.validateNames(verr, input.FirstName, input.LastName)
	if err := s.validateUsername(verr, input.Username, targetID); err != nil {
		return nil, err
	}
	if input.Password != "" {
		s.validatePassword(verr, input.Password, input.PasswordConfirmation)
	}
	if verr.Fields.HasErrors() {
		return nil, verr
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Username = input.Username

	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user account. Only the subject user may delete
// themselves, and a user referenced as owner or executor of any task is
// left intact with errors.ErrInUse returned.
func (s *UserService) Delete(actorID, targetID uint64) error {
	if actorID != targetID {
		return apperrors.ErrPermissionDenied
	}

	if _, err := s.Get(targetID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(targetID); err != nil {
		if errors.Is(err, apperrors.ErrInUse) {
			return apperrors.ErrInUse
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *UserService) validateNames(verr *apperrors.ValidationError, firstName, lastName string) {
	if firstName == "" {
		verr.Fields.Add("first_name", "This field is required.")
	}
	if lastName == "" {
		verr.Fields.Add("last_name", "This field is required.")
	}
}

func (s *UserService) validateUsername(verr *apperrors.ValidationError, username string, excludeID uint64) error {
	if username == "" {
		verr.Fields.Add("username", "This field is required.")
		return nil
	}

	existing, err := s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if err == nil && existing.ID != excludeID {
		verr.Fields.Add("username", "A user with that username already exists.")
	}

	return nil
}

func (s *UserService) validatePassword(verr *apperrors.ValidationError, password, confirmation string) {
	if len(password) < constants.MinPasswordLength {
		verr.Fields.Add("password", fmt.Sprintf(
			"The entered password is too short. It must contain at least %d characters.",
			constants.MinPasswordLength))
	}
	if password != confirmation {
		verr.Fields.Add("password_confirmation", "Passwords didn't match.")
	}
}
