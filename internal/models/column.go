package models

import "time"

// Column is a vertical lane on a project board ("To Do", "In Progress", ...).
// Position is caller-managed: clients reorder by renumbering, the server only
// enforces that no two columns in one project share a position.
type Column struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_columns_project_position" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Position  int       `gorm:"not null;uniqueIndex:idx_columns_project_position" json:"order"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks []Task `gorm:"foreignKey:ColumnID" json:"tasks,omitempty"`
}

// TableName specifies the table name for GORM.
func (Column) TableName() string {
	return "columns"
}
