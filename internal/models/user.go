// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account that can own projects, join them as a
// member, be assigned tasks, author comments, and receive notifications.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;unique;not null" json:"username"`
	Email     string    `gorm:"size:254;unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnedProjects []Project `gorm:"foreignKey:OwnerID" json:"owned_projects,omitempty"`
}
