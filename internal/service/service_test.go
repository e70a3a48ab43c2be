package service

import (
	"testing"

	"kanban/internal/authz"
	"kanban/internal/models"
	"kanban/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires every service against an in-memory database.
type testEnv struct {
	db *gorm.DB

	projects      *ProjectService
	columns       *ColumnService
	tasks         *TaskService
	comments      *CommentService
	notifications *NotificationService
	users         *UserService

	owner    models.User
	member   models.User
	stranger models.User
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Column{},
		&models.Task{},
		&models.Comment{},
		&models.Notification{},
	))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	authorizer := authz.NewAuthorizer(db)

	env := &testEnv{
		db:            db,
		projects:      NewProjectService(projectRepo, userRepo, authorizer),
		columns:       NewColumnService(columnRepo, authorizer),
		tasks:         NewTaskService(taskRepo, userRepo, notificationRepo, authorizer),
		comments:      NewCommentService(commentRepo, taskRepo, notificationRepo, authorizer),
		notifications: NewNotificationService(notificationRepo),
		users:         NewUserService(userRepo),
	}

	env.owner = models.User{Username: "owner", Email: "owner@example.com", Password: "pw"}
	env.member = models.User{Username: "member", Email: "member@example.com", Password: "pw"}
	env.stranger = models.User{Username: "stranger", Email: "stranger@example.com", Password: "pw"}
	require.NoError(t, db.Create(&env.owner).Error)
	require.NoError(t, db.Create(&env.member).Error)
	require.NoError(t, db.Create(&env.stranger).Error)

	return env
}

// board creates a project owned by env.owner with env.member as member, one
// column and one task created by the owner.
func (env *testEnv) board(t *testing.T) (*models.Project, *models.Column, *models.Task) {
	t.Helper()
	project := &models.Project{Name: "Board", OwnerID: env.owner.ID, IsActive: true}
	require.NoError(t, env.db.Create(project).Error)
	require.NoError(t, env.db.Create(&models.ProjectMembership{
		ProjectID: project.ID, UserID: env.member.ID,
	}).Error)

	column := &models.Column{ProjectID: project.ID, Name: "To Do", Position: 0, IsActive: true}
	require.NoError(t, env.db.Create(column).Error)

	task := &models.Task{ColumnID: column.ID, Title: "Task", Position: 0, CreatedByID: &env.owner.ID, IsActive: true}
	require.NoError(t, env.db.Create(task).Error)

	return project, column, task
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}
