package handlers

import (
	"context"
	"net/http"

	"task_manager/internal/config"
	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error
	loginToken  string
	loginErr    error
	parseID     int
	parseErr    error
	user        *models.User
	userErr     error

	lastRegisterEmail    string
	lastRegisterPassword string
	lastLoginEmail       string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, email, password string) (int, error) {
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) UserByID(_ context.Context, id int) (*models.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: id, Email: "user@example.com"}, nil
}

type mockTasks struct {
	createResp models.Task
	createErr  error
	listResp   []models.Task
	listErr    error
	getResp    *models.Task
	getErr     error
	updateResp *models.Task
	updateErr  error
	deleteErr  error
	summary    models.TaskSummary
	summaryErr error

	lastCreateTitle string
	lastCreateDesc  string
	lastListStatus  string
	lastUpdateID    string
	lastUpdatePatch models.TaskPatch
	deleteCalls     int
}

func (m *mockTasks) Create(_ context.Context, title, description string) (models.Task, error) {
	m.lastCreateTitle = title
	m.lastCreateDesc = description
	return m.createResp, m.createErr
}

func (m *mockTasks) List(_ context.Context, status string) ([]models.Task, error) {
	m.lastListStatus = status
	return m.listResp, m.listErr
}

func (m *mockTasks) GetByID(_ context.Context, id string) (*models.Task, error) {
	return m.getResp, m.getErr
}

func (m *mockTasks) Update(_ context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	m.lastUpdateID = id
	m.lastUpdatePatch = patch
	return m.updateResp, m.updateErr
}

func (m *mockTasks) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	return m.deleteErr
}

func (m *mockTasks) Summary(_ context.Context) (models.TaskSummary, error) {
	return m.summary, m.summaryErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, &config.Config{}, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
