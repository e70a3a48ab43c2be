package models

import "time"

// Project is the root of the board hierarchy. The owner administers the
// project; members can view and mutate everything below it but not the
// project row itself.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Memberships []ProjectMembership `gorm:"foreignKey:ProjectID" json:"memberships,omitempty"`
	Columns     []Column            `gorm:"foreignKey:ProjectID" json:"columns,omitempty"`
}

// TableName specifies the table name for GORM.
func (Project) TableName() string {
	return "projects"
}
