package models

import "time"

// ProjectMembership maps users to projects they can collaborate on. The owner
// is not required to have a membership row; ownership implies full access.
type ProjectMembership struct {
	ProjectID uint      `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (ProjectMembership) TableName() string {
	return "project_memberships"
}
