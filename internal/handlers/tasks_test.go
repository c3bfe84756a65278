package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/google/uuid"
)

func doJSON(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandlers_RequireAuth(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}, Tasks: &mockTasks{}}
	r := newTestRouter(s)

	id := uuid.NewString()
	for _, probe := range []struct{ method, path string }{
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodGet, "/api/tasks/" + id},
		{http.MethodPut, "/api/tasks/" + id},
		{http.MethodDelete, "/api/tasks/" + id},
	} {
		w := doJSON(r, probe.method, probe.path, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without token, got %d", probe.method, probe.path, w.Code)
		}
	}
}

func TestTaskHandlers_Create(t *testing.T) {
	tasks := &mockTasks{createResp: models.Task{ID: uuid.NewString(), Title: "buy milk"}}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, Tasks: tasks}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodPost, "/api/tasks", `{"title":"buy milk","description":"2 liters"}`, "valid")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d, body=%s", w.Code, w.Body.String())
	}
	if tasks.lastCreateTitle != "buy milk" || tasks.lastCreateDesc != "2 liters" {
		t.Fatalf("unexpected create args: %q / %q", tasks.lastCreateTitle, tasks.lastCreateDesc)
	}

	// missing title → 400 before the service is reached
	w = doJSON(r, http.MethodPost, "/api/tasks", `{"description":"no title"}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", w.Code)
	}

	// whitespace title passes binding but fails service validation → 400
	tasks.createErr = service.ErrEmptyTitle
	w = doJSON(r, http.MethodPost, "/api/tasks", `{"title":"   "}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank title, got %d", w.Code)
	}
}

func TestTaskHandlers_List(t *testing.T) {
	tasks := &mockTasks{listResp: []models.Task{
		{ID: uuid.NewString(), Title: "a"},
		{ID: uuid.NewString(), Title: "b", Completed: true},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, Tasks: tasks}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodGet, "/api/tasks?status=completed", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	if tasks.lastListStatus != "completed" {
		t.Fatalf("status query not passed through, got %q", tasks.lastListStatus)
	}

	var got []models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}

	// invalid status → 400
	tasks.listErr = service.ErrInvalidStatus
	w = doJSON(r, http.MethodGet, "/api/tasks?status=done", "", "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", w.Code)
	}
}

func TestTaskHandlers_Get(t *testing.T) {
	id := uuid.NewString()
	tasks := &mockTasks{getResp: &models.Task{ID: id, Title: "a"}}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, Tasks: tasks}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodGet, "/api/tasks/"+id, "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d, body=%s", w.Code, w.Body.String())
	}

	// malformed id → 400 without touching the service
	w = doJSON(r, http.MethodGet, "/api/tasks/not-a-uuid", "", "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}

	// unknown id → 404
	tasks.getResp = nil
	tasks.getErr = service.ErrTaskNotFound
	w = doJSON(r, http.MethodGet, "/api/tasks/"+uuid.NewString(), "", "valid")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTaskHandlers_Update(t *testing.T) {
	id := uuid.NewString()
	tasks := &mockTasks{updateResp: &models.Task{ID: id, Title: "kept", Completed: true}}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, Tasks: tasks}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodPut, "/api/tasks/"+id, `{"completed":true,"title":"ignored"}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d, body=%s", w.Code, w.Body.String())
	}
	if tasks.lastUpdateID != id {
		t.Fatalf("update id: got %q", tasks.lastUpdateID)
	}
	patch := tasks.lastUpdatePatch
	if patch.Completed == nil || !*patch.Completed {
		t.Fatalf("expected completed=true in patch, got %+v", patch)
	}
	if patch.Title == nil || *patch.Title != "ignored" {
		t.Fatalf("patch must carry every present field for the service to arbitrate, got %+v", patch)
	}

	var resp struct {
		Message string      `json:"message"`
		Task    models.Task `json:"task"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Task.ID != id || !resp.Task.Completed {
		t.Fatalf("unexpected echoed task: %+v", resp.Task)
	}

	// unknown id → 404
	tasks.updateResp = nil
	tasks.updateErr = service.ErrTaskNotFound
	w = doJSON(r, http.MethodPut, "/api/tasks/"+uuid.NewString(), `{"completed":true}`, "valid")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTaskHandlers_Delete(t *testing.T) {
	id := uuid.NewString()
	tasks := &mockTasks{}
	s := &service.Service{Authorization: &mockAuth{parseID: 7}, Tasks: tasks}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodDelete, "/api/tasks/"+id, "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d, body=%s", w.Code, w.Body.String())
	}
	if tasks.deleteCalls != 1 {
		t.Fatalf("expected 1 delete call, got %d", tasks.deleteCalls)
	}

	// deleting a nonexistent id reports NotFound, not success
	tasks.deleteErr = service.ErrTaskNotFound
	w = doJSON(r, http.MethodDelete, "/api/tasks/"+uuid.NewString(), "", "valid")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
