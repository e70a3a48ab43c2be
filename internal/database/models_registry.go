package database

import "kanban/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Parents precede children so foreign keys resolve during AutoMigrate.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Column{},
		&models.Task{},
		&models.Comment{},
		&models.Notification{},
	}
}
