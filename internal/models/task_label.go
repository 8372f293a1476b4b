package models

import "time"

// TaskLabel is the task/label association. It carries no meaning of its own
// and is removed together with its task.
type TaskLabel struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	LabelID   uint64    `gorm:"primarykey" json:"label_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task  Task  `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Label Label `gorm:"foreignKey:LabelID;constraint:OnDelete:RESTRICT" json:"label,omitempty"`
}
