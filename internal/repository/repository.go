package repository

import (
	"github.com/olgakuzina/task-manager/internal/models"
	"github.com/olgakuzina/task-manager/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns all users ordered by id
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete deletes a user unless a task references them as owner or
	// executor, in which case it returns errors.ErrInUse and leaves the
	// record intact.
	Delete(id uint64) error
}

// StatusRepository defines the interface for status data access
type StatusRepository interface {
	// Create creates a new status
	Create(status *models.Status) error

	// FindByID finds a status by ID
	FindByID(id uint64) (*models.Status, error)

	// FindByName finds a status by its unique name
	FindByName(name string) (*models.Status, error)

	// List returns all statuses ordered by id
	List() ([]models.Status, error)

	// Update updates a status
	Update(status *models.Status) error

	// Delete deletes a status unless a task references it, in which case
	// it returns errors.ErrInUse and leaves the record intact.
	Delete(id uint64) error
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	// Create creates a new label
	Create(label *models.Label) error

	// FindByID finds a label by ID
	FindByID(id uint64) (*models.Label, error)

	// FindByName finds a label by its unique name
	FindByName(name string) (*models.Label, error)

	// List returns all labels ordered by id
	List() ([]models.Label, error)

	// CountByIDs counts how many of the given label IDs exist
	CountByIDs(ids []uint64) (int64, error)

	// Update updates a label
	Update(label *models.Label) error

	// Delete deletes a label unless a task references it, in which case
	// it returns errors.ErrInUse and leaves the record intact.
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task and its label associations atomically
	Create(task *models.Task, labelIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByName finds a task by its unique name
	FindByName(name string) (*models.Task, error)

	// List retrieves tasks matching the filter, with pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task and replaces its label associations atomically
	Update(task *models.Task, labelIDs []uint64) error

	// Delete removes a task and its label associations atomically
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks. All set filters
// compose as logical AND.
type TaskFilter struct {
	StatusID   *uint64
	ExecutorID *uint64
	LabelID    *uint64
	OwnerID    *uint64
	Pagination utils.PaginationParams
}
