package repository

import (
	"github.com/olgakuzina/task-manager/internal/database"
	"github.com/olgakuzina/task-manager/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task and its label associations atomically
func (r *GormTaskRepository) Create(task *models.Task, labelIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return createTaskLabels(tx, task.ID, labelIDs)
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindByName finds a task by its unique name
func (r *GormTaskRepository) FindByName(name string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("name = ?", name).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter, with pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.StatusID != nil {
		query = query.Where("tasks.status_id = ?", *filter.StatusID)
	}
	if filter.ExecutorID != nil {
		query = query.Where("tasks.executor_id = ?", *filter.ExecutorID)
	}
	if filter.OwnerID != nil {
		query = query.Where("tasks.owner_id = ?", *filter.OwnerID)
	}
	if filter.LabelID != nil {
		labelSubQuery := r.db.Model(&models.TaskLabel{}).
			Select("1").
			Where("task_labels.task_id = tasks.id").
			Where("task_labels.label_id = ?", *filter.LabelID)
		query = query.Where("EXISTS (?)", labelSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.id")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	err := listQuery.
		Preload("Status").
		Preload("Owner").
		Preload("Executor").
		Preload("Labels").
		Preload("Labels.Label").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task and replaces its label associations atomically
func (r *GormTaskRepository) Update(task *models.Task, labelIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Status", "Owner", "Executor", "Labels").Save(task).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskLabel{}).Error; err != nil {
			return err
		}

		return createTaskLabels(tx, task.ID, labelIDs)
	})
}

// Delete removes a task and its label associations atomically
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskLabel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

func createTaskLabels(tx *gorm.DB, taskID uint64, labelIDs []uint64) error {
	if len(labelIDs) == 0 {
		return nil
	}

	taskLabels := make([]models.TaskLabel, len(labelIDs))
	for i, labelID := range labelIDs {
		taskLabels[i] = models.TaskLabel{
			TaskID:  taskID,
			LabelID: labelID,
		}
	}

	return tx.Create(&taskLabels).Error
}
