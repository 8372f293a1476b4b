package models

import "time"

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	StatusID    uint64    `gorm:"not null;index" json:"status_id"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	ExecutorID  uint64    `gorm:"not null;index" json:"executor_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations. The references are RESTRICT so the storage engine blocks
	// deleting a status or user that is still in use.
	Status   Status      `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT" json:"status,omitempty"`
	Owner    User        `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT" json:"owner,omitempty"`
	Executor User        `gorm:"foreignKey:ExecutorID;constraint:OnDelete:RESTRICT" json:"executor,omitempty"`
	Labels   []TaskLabel `gorm:"foreignKey:TaskID" json:"labels,omitempty"`
}
