package models

import "time"

// Task is a card within a column. Assignee and creator survive user deletion
// as nulls; the card itself is only removed with its column.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ColumnID    uint       `gorm:"not null;uniqueIndex:idx_tasks_column_position" json:"column_id"`
	Column      *Column    `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"column,omitempty"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Position    int        `gorm:"not null;uniqueIndex:idx_tasks_column_position" json:"order"`
	Due         *time.Time `json:"due,omitempty"`
	AssignedID  *uint      `gorm:"index" json:"assigned_id"`
	Assigned    *User      `gorm:"foreignKey:AssignedID;constraint:OnDelete:SET NULL" json:"assigned,omitempty"`
	CreatedByID *uint      `gorm:"index" json:"created_by_id"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Task) TableName() string {
	return "tasks"
}
