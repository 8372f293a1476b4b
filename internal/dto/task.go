package dto

import (
	"time"

	"github.com/olgakuzina/task-manager/internal/models"
)

// UserDTO represents a user in rendered pages
type UserDTO struct {
	ID        uint64
	Username  string
	FullName  string
	CreatedAt time.Time
}

// StatusDTO represents a status in rendered pages
type StatusDTO struct {
	ID        uint64
	Name      string
	CreatedAt time.Time
}

// LabelDTO represents a label in rendered pages
type LabelDTO struct {
	ID        uint64
	Name      string
	CreatedAt time.Time
}

// TaskDTO represents a task projection with its references resolved
type TaskDTO struct {
	ID          uint64
	Name        string
	Description string
	Status      StatusDTO
	Owner       UserDTO
	Executor    UserDTO
	Labels      []LabelDTO
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName(),
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToStatusDTO converts a Status model to StatusDTO
func ToStatusDTO(status models.Status) StatusDTO {
	return StatusDTO{
		ID:        status.ID,
		Name:      status.Name,
		CreatedAt: status.CreatedAt,
	}
}

// ToStatusDTOs converts a slice of Status models
func ToStatusDTOs(statuses []models.Status) []StatusDTO {
	dtos := make([]StatusDTO, len(statuses))
	for i, status := range statuses {
		dtos[i] = ToStatusDTO(status)
	}
	return dtos
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:        label.ID,
		Name:      label.Name,
		CreatedAt: label.CreatedAt,
	}
}

// ToLabelDTOs converts a slice of Label models
func ToLabelDTOs(labels []models.Label) []LabelDTO {
	dtos := make([]LabelDTO, len(labels))
	for i, label := range labels {
		dtos[i] = ToLabelDTO(label)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO. Relations are mapped when
// preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Status.ID != 0 {
		dto.Status = ToStatusDTO(task.Status)
	}
	if task.Owner.ID != 0 {
		dto.Owner = ToUserDTO(task.Owner)
	}
	if task.Executor.ID != 0 {
		dto.Executor = ToUserDTO(task.Executor)
	}

	if len(task.Labels) > 0 {
		dto.Labels = make([]LabelDTO, 0, len(task.Labels))
		for _, taskLabel := range task.Labels {
			if taskLabel.Label.ID != 0 {
				dto.Labels = append(dto.Labels, ToLabelDTO(taskLabel.Label))
			}
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// LabelIDs extracts the associated label ids of a task, for form prefill.
func LabelIDs(task models.Task) []uint64 {
	ids := make([]uint64, len(task.Labels))
	for i, taskLabel := range task.Labels {
		ids[i] = taskLabel.LabelID
	}
	return ids
}
