package repository

import (
	"context"
	"database/sql"

	"task_manager/internal/models"
	"task_manager/internal/repository/db"
)

// Tasks is the persistence surface for task records.
// Lookup methods return (nil, nil) when the id does not exist.
type Tasks interface {
	Create(ctx context.Context, title, description string) (models.Task, error)
	List(ctx context.Context, completed *bool) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	UpdateFields(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
	Counts(ctx context.Context) (models.TaskSummary, error)
}

// Users is the persistence surface for user records.
type Users interface {
	Create(ctx context.Context, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type Repository struct {
	Tasks Tasks
	Users Users
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Tasks: NewTaskRepository(sqlDB),
		Users: NewUserRepository(sqlDB),
	}
}

// InitDB opens the SQLite file at path and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
