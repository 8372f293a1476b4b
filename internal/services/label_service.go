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

var ErrLabelNotFound = errors.New("label not found")

// LabelService handles label business logic.
type LabelService struct {
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService.
func NewLabelService(labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{
		labelRepo: labelRepo,
	}
}

// List returns all labels.
func (s *LabelService) List() ([]models.Label, error) {
	labels, err := s.labelRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// Get returns a label by ID.
func (s *LabelService) Get(id uint64) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}
	return label, nil
}

// Create validates the name and persists a new label.
func (s *LabelService) Create(name string) (*models.Label, error) {
	name = strings.TrimSpace(name)
	if err := s.validateName(name, 0); err != nil {
		return nil, err
	}

	label := &models.Label{Name: name}
	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	return label, nil
}

// Update validates the name and updates an existing label.
func (s *LabelService) Update(id uint64, name string) (*models.Label, error) {
	label, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.validateName(name, id); err != nil {
		return nil, err
	}

	label.Name = name
	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	return label, nil
}

// Delete removes a label. A label attached to any task is left intact and
// errors.ErrInUse is returned.
func (s *LabelService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.labelRepo.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrInUse) {
			return apperrors.ErrInUse
		}
		return fmt.Errorf("failed to delete label: %w", err)
	}

	return nil
}

func (s *LabelService) validateName(name string, excludeID uint64) error {
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

	existing, err := s.labelRepo.FindByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check label name: %w", err)
	}
	if err == nil && existing.ID != excludeID {
		verr.Fields.Add("name", "A label with this name already exists.")
		return verr
	}

	return nil
}
