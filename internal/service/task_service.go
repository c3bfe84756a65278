package service

import (
	"context"
	"errors"
	"strings"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

// Status filter values accepted by List.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrInvalidStatus = errors.New(`status must be "completed" or "pending"`)
)

type TaskService struct {
	tasks repository.Tasks
}

func NewTaskService(tasks repository.Tasks) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create validates the title and persists a new pending task.
func (s *TaskService) Create(ctx context.Context, title, description string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrEmptyTitle
	}
	return s.tasks.Create(ctx, title, description)
}

// List returns tasks, optionally filtered. status "" means no filter.
func (s *TaskService) List(ctx context.Context, status string) ([]models.Task, error) {
	var completed *bool
	switch status {
	case "":
	case StatusCompleted:
		v := true
		completed = &v
	case StatusPending:
		v := false
		completed = &v
	default:
		return nil, ErrInvalidStatus
	}
	return s.tasks.List(ctx, completed)
}

func (s *TaskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// Update applies the partial-update policy: when the patch carries the
// completed flag, only that flag is written and any other fields in the
// patch are ignored; otherwise every present field is validated and merged.
func (s *TaskService) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var (
		t   *models.Task
		err error
	)
	if patch.Completed != nil {
		t, err = s.tasks.SetCompleted(ctx, id, *patch.Completed)
	} else {
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return nil, ErrEmptyTitle
			}
			patch.Title = &title
		}
		t, err = s.tasks.UpdateFields(ctx, id, patch)
	}
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	found, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrTaskNotFound
	}
	return nil
}

// Summary reports task counts for the live feed.
func (s *TaskService) Summary(ctx context.Context) (models.TaskSummary, error) {
	return s.tasks.Counts(ctx)
}
