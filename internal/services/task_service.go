package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olgakuzina/task-manager/internal/constants"
	apperrors "github.com/olgakuzina/task-manager/internal/errors"
	"github.com/olgakuzina/task-manager/internal/models"
	"github.com/olgakuzina/task-manager/internal/repository"
	"github.com/olgakuzina/task-manager/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrNotTaskOwner is returned when anyone but the task owner attempts
	// to delete it.
	ErrNotTaskOwner = errors.New("a task can only be deleted by its author")
)

// taskPreloads are the relations a task projection needs.
var taskPreloads = []string{"Status", "Owner", "Executor", "Labels", "Labels.Label"}

// TaskService handles task business logic.
type TaskService struct {
	taskRepo   repository.TaskRepository
	statusRepo repository.StatusRepository
	userRepo   repository.UserRepository
	labelRepo  repository.LabelRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	statusRepo repository.StatusRepository,
	userRepo repository.UserRepository,
	labelRepo repository.LabelRepository,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		statusRepo: statusRepo,
		userRepo:   userRepo,
		labelRepo:  labelRepo,
	}
}

// ListTasksInput represents filters for listing tasks. Set filters compose
// as logical AND; MyTasksOnly restricts to tasks owned by the actor.
type ListTasksInput struct {
	ActorID     uint64
	StatusID    *uint64
	ExecutorID  *uint64
	LabelID     *uint64
	MyTasksOnly bool
	Pagination  utils.PaginationParams
}

// TaskInput represents the task form for both create and update. The owner
// is never part of the form.
type TaskInput struct {
	Name        string
	Description string
	StatusID    uint64
	ExecutorID  uint64
	LabelIDs    []uint64
}

// List returns tasks matching the filters.
func (s *TaskService) List(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		StatusID:   input.StatusID,
		ExecutorID: input.ExecutorID,
		LabelID:    input.LabelID,
		Pagination: input.Pagination,
	}
	if input.MyTasksOnly {
		filter.OwnerID = &input.ActorID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// Get returns a task with its status, owner, executor and labels resolved.
func (s *TaskService) Get(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// Create validates the form and persists a new task. The owner is forced
// to the acting user regardless of any submitted value.
func (s *TaskService) Create(actorID uint64, input TaskInput) (*models.Task, error) {
	input.Name = strings.TrimSpace(input.Name)
	labelIDs := uniqueUint64(input.LabelIDs)

	if err := s.validate(input, labelIDs, 0); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		StatusID:    input.StatusID,
		OwnerID:     actorID,
		ExecutorID:  input.ExecutorID,
	}

	if err := s.taskRepo.Create(task, labelIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.Get(task.ID)
}

// Update validates the form and updates an existing task. The owner set at
// creation is kept no matter what the submission contains.
func (s *TaskService) Update(taskID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	input.Name = strings.TrimSpace(input.Name)
	labelIDs := uniqueUint64(input.LabelIDs)

	if err := s.validate(input, labelIDs, taskID); err != nil {
		return nil, err
	}

	task.Name = input.Name
	task.Description = input.Description
	task.StatusID = input.StatusID
	task.ExecutorID = input.ExecutorID

	if err := s.taskRepo.Update(task, labelIDs); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.Get(task.ID)
}

// Delete removes a task if the actor is its owner. Statuses, labels and
// users referenced by the task are untouched.
func (s *TaskService) Delete(actorID, taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerID != actorID {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) validate(input TaskInput, labelIDs []uint64, excludeID uint64) error {
	verr := apperrors.NewValidationError()

	if input.Name == "" {
		verr.Fields.Add("name", "This field is required.")
	} else if len(input.Name) > constants.MaxNameLength {
		verr.Fields.Add("name", fmt.Sprintf(
			"Ensure this value has at most %d characters.", constants.MaxNameLength))
	} else {
		existing, err := s.taskRepo.FindByName(input.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check task name: %w", err)
		}
		if err == nil && existing.ID != excludeID {
			verr.Fields.Add("name", "A task with this name already exists.")
		}
	}

	if input.StatusID == 0 {
		verr.Fields.Add("status", "This field is required.")
	} else if _, err := s.statusRepo.FindByID(input.StatusID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check status: %w", err)
		}
		verr.Fields.Add("status", "Select a valid status.")
	}

	if input.ExecutorID == 0 {
		verr.Fields.Add("executor", "This field is required.")
	} else if _, err := s.userRepo.FindByID(input.ExecutorID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check executor: %w", err)
		}
		verr.Fields.Add("executor", "Select a valid executor.")
	}

	if len(labelIDs) > 0 {
		count, err := s.labelRepo.CountByIDs(labelIDs)
		if err != nil {
			return fmt.Errorf("failed to check labels: %w", err)
		}
		if int(count) != len(labelIDs) {
			verr.Fields.Add("labels", "Select valid labels.")
		}
	}

	if verr.Fields.HasErrors() {
		return verr
	}

	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
