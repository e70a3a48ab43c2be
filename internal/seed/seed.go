// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"kanban/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumProjects int
	ShouldClean bool
}

var columnNames = []string{"Backlog", "To Do", "In Progress", "Review", "Done"}

// Seed populates the database with demo boards.
// All seeded users share the password "password123".
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d projects...", opts.NumUsers, opts.NumProjects)

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	projects, err := createProjects(db, r, users, opts.NumProjects)
	if err != nil {
		return fmt.Errorf("failed to create projects: %w", err)
	}
	log.Printf("created %d projects", len(projects))

	if err := populateBoards(db, r, users, projects); err != nil {
		return fmt.Errorf("failed to populate boards: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// ClearAll truncates every domain table. Postgres only.
func ClearAll(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, comments, tasks, columns, project_memberships, projects, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("user%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createProjects(db *gorm.DB, r *rand.Rand, users []*models.User, count int) ([]*models.Project, error) {
	projects := make([]*models.Project, 0, count)
	for i := 0; i < count; i++ {
		owner := users[r.Intn(len(users))]
		project := &models.Project{
			Name:        fmt.Sprintf("%s %s", gofakeit.BuzzWord(), gofakeit.NounAbstract()),
			Description: gofakeit.Sentence(10),
			OwnerID:     owner.ID,
			IsActive:    r.Intn(10) > 0, // roughly one in ten soft-deleted
		}
		if err := db.Create(project).Error; err != nil {
			return nil, err
		}

		// A few members besides the owner.
		for _, user := range pickUsers(r, users, 1+r.Intn(4)) {
			if user.ID == owner.ID {
				continue
			}
			membership := &models.ProjectMembership{ProjectID: project.ID, UserID: user.ID}
			if err := db.Create(membership).Error; err != nil {
				return nil, err
			}
		}

		projects = append(projects, project)
	}
	return projects, nil
}

func populateBoards(db *gorm.DB, r *rand.Rand, users []*models.User, projects []*models.Project) error {
	for _, project := range projects {
		for position, name := range columnNames {
			column := &models.Column{
				ProjectID: project.ID,
				Name:      name,
				Position:  position,
				IsActive:  true,
			}
			if err := db.Create(column).Error; err != nil {
				return err
			}

			taskCount := r.Intn(6)
			for taskPos := 0; taskPos < taskCount; taskPos++ {
				creator := users[r.Intn(len(users))]
				task := &models.Task{
					ColumnID:    column.ID,
					Title:       gofakeit.Sentence(4),
					Description: gofakeit.Paragraph(1, 2, 8, "\n"),
					Position:    taskPos,
					CreatedByID: &creator.ID,
					IsActive:    true,
				}
				if r.Intn(2) == 0 {
					assignee := users[r.Intn(len(users))]
					task.AssignedID = &assignee.ID
				}
				if r.Intn(3) == 0 {
					due := time.Now().Add(time.Duration(1+r.Intn(30)) * 24 * time.Hour)
					task.Due = &due
				}
				if err := db.Create(task).Error; err != nil {
					return err
				}

				for i := 0; i < r.Intn(4); i++ {
					comment := &models.Comment{
						TaskID:   task.ID,
						AuthorID: users[r.Intn(len(users))].ID,
						Text:     gofakeit.Sentence(12),
						IsActive: true,
					}
					if err := db.Create(comment).Error; err != nil {
						return err
					}
				}

				if task.AssignedID != nil {
					notification := &models.Notification{
						UserID:  *task.AssignedID,
						Message: fmt.Sprintf("You were assigned to task %q", task.Title),
						Read:    r.Intn(2) == 0,
					}
					if err := db.Create(notification).Error; err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func pickUsers(r *rand.Rand, users []*models.User, count int) []*models.User {
	if count > len(users) {
		count = len(users)
	}
	perm := r.Perm(len(users))
	picked := make([]*models.User, 0, count)
	for _, idx := range perm[:count] {
		picked = append(picked, users[idx])
	}
	return picked
}
