package service

import (
	"context"

	"task_manager/internal/config"
	"task_manager/internal/models"
	"task_manager/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, email, password string) (int, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
}

// Tasks exposes the task CRUD operations behind the protected routes.
type Tasks interface {
	Create(ctx context.Context, title, description string) (models.Task, error)
	List(ctx context.Context, status string) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (models.TaskSummary, error)
}

type Service struct {
	Authorization
	Tasks
}

func NewService(repos *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg),
		Tasks:         NewTaskService(repos.Tasks),
	}
}
