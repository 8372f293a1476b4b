package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olgakuzina/task-manager/internal/constants"
	apperrors "github.com/olgakuzina/task-manager/internal/errors"
	"github.com/olgakuzina/task-manager/internal/models"
	"github.com/olgakuzina/task-manager/internal/repository"
	"gorm.io/gorm"
)

var ErrStatusNotFound = errors.New("status not found")

// StatusService handles task status business logic.
type StatusService struct {
	statusRepo repository.StatusRepository
}

// NewStatusService creates a new StatusService.
func NewStatusService(statusRepo repository.StatusRepository) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
	}
}

// List returns all statuses.
func (s *StatusService) List() ([]models.Status, error) {
	statuses, err := s.statusRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

// Get returns a status by ID.
func (s *StatusService) Get(id uint64) (*models.Status, error) {
	status, err := s.statusRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to find status: %w", err)
	}
	return status, nil
}

// Create validates the name and persists a new status.
func (s *StatusService) Create(name string) (*models.Status, error) {
	name = strings.TrimSpace(name)
	if err := s.validateName(name, 0); err != nil {
		return nil, err
	}

	status := &models.Status{Name: name}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}

	return status, nil
}

// Update validates the name and updates an existing status.
func (s *StatusService) Update(id uint64, name string) (*models.Status, error) {
	status, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.validateName(name, id); err != nil {
		return nil, err
	}

	status.Name = name
	if err := s.statusRepo.Update(status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return status, nil
}

// Delete removes a status. A status referenced by any task is left intact
// and errors.ErrInUse is returned.
func (s *StatusService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.statusRepo.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrInUse) {
			return apperrors.ErrInUse
		}
		return fmt.Errorf("failed to delete status: %w", err)
	}

	return nil
}

func (s *StatusService) validateName(name string, excludeID uint64) error {
	verr := apperrors.NewValidationError()

	if name == "" {
		verr.Fields.Add("name", "This field is required.")
		return verr
	}
	if len(name) > constants.MaxNameLength {
		verr.Fields.Add("name", fmt.Sprintf(
			"Ensure this value has at most %d characters.", constants.MaxNameLength))
		return verr
	}

	existing, err := s.statusRepo.FindByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check status name: %w", err)
	}
	if err == nil && existing.ID != excludeID {
		verr.Fields.Add("name", "A status with this name already exists.")
		return verr
	}

	return nil
}
