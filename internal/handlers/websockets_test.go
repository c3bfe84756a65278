package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"task_manager/internal/config"
	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{}, &config.Config{}, nil)

	cases := []struct {
		name  string
		query string
		want  time.Duration
	}{
		{name: "default_when_missing", query: "", want: defaultInterval},
		{name: "interval_duration", query: "interval=200ms", want: 200 * time.Millisecond},
		{name: "interval_ms", query: "interval_ms=150", want: 150 * time.Millisecond},
		{name: "interval_too_large_falls_back", query: "interval=20s", want: defaultInterval},
		{name: "interval_ms_too_large_falls_back", query: "interval_ms=20000", want: defaultInterval},
		{name: "interval_garbage_falls_back", query: "interval=bogus", want: defaultInterval},
		{name: "interval_ms_garbage_falls_back", query: "interval_ms=NaN", want: defaultInterval},
		{name: "both_present_interval_wins", query: "interval=2s&interval_ms=150", want: 2 * time.Second},
		{name: "both_present_invalid_interval_ms_used", query: "interval=bogus&interval_ms=250", want: 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ws?"+tc.query, nil)

			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("parseInterval(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func newWSServer(t *testing.T, s *service.Service, cfg *config.Config) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, cfg, nil)
	r := gin.New()
	r.GET("/ws", h.wsConnect)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(t *testing.T, srv *httptest.Server, query string) string {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query
	return u.String()
}

func TestWebSocket_SummaryStream_InitialAndPeriodic(t *testing.T) {
	tasks := &mockTasks{summary: models.TaskSummary{Total: 3, Completed: 1, Pending: 2}}
	s := &service.Service{Authorization: &mockAuth{}, Tasks: tasks}
	srv := newWSServer(t, s, &config.Config{})

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv, "interval_ms=20"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	readSummary := func() models.TaskSummary {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if env.Type != "summary" {
			t.Fatalf("frame type = %q, want %q", env.Type, "summary")
		}
		var sum models.TaskSummary
		if err := json.Unmarshal(env.Data, &sum); err != nil {
			t.Fatalf("unmarshal summary: %v", err)
		}
		return sum
	}

	// Initial frame arrives before the first tick.
	first := readSummary()
	if first != tasks.summary {
		t.Fatalf("initial summary = %+v, want %+v", first, tasks.summary)
	}

	// A periodic frame follows on the configured interval.
	second := readSummary()
	if second != tasks.summary {
		t.Fatalf("periodic summary = %+v, want %+v", second, tasks.summary)
	}
}

func TestWebSocket_InitialSummaryError_Closes(t *testing.T) {
	tasks := &mockTasks{summaryErr: errors.New("counts unavailable")}
	s := &service.Service{Authorization: &mockAuth{}, Tasks: tasks}
	srv := newWSServer(t, s, &config.Config{})

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(wsURL(t, srv, "interval_ms=20"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var msg json.RawMessage
	if err := conn.ReadJSON(&msg); err == nil {
		t.Fatalf("expected closed connection, read %s", msg)
	}
}

func TestWebSocket_OriginCheck(t *testing.T) {
	tasks := &mockTasks{summary: models.TaskSummary{Total: 1, Pending: 1}}
	s := &service.Service{Authorization: &mockAuth{}, Tasks: tasks}
	cfg := &config.Config{AllowedOrigin: "http://localhost:5173"}
	srv := newWSServer(t, s, cfg)

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}

	t.Run("mismatched_origin_rejected", func(t *testing.T) {
		header := http.Header{"Origin": {"http://evil.example.com"}}
		conn, resp, err := dialer.Dial(wsURL(t, srv, ""), header)
		if err == nil {
			conn.Close()
			t.Fatal("expected handshake failure for disallowed origin")
		}
		if resp != nil && resp.StatusCode != http.StatusForbidden {
			t.Fatalf("handshake status = %d, want %d", resp.StatusCode, http.StatusForbidden)
		}
	})

	t.Run("allowed_origin_accepted", func(t *testing.T) {
		header := http.Header{"Origin": {cfg.AllowedOrigin}}
		conn, _, err := dialer.Dial(wsURL(t, srv, ""), header)
		if err != nil {
			t.Fatalf("dial with allowed origin: %v", err)
		}
		conn.Close()
	})

	t.Run("no_origin_accepted", func(t *testing.T) {
		conn, _, err := dialer.Dial(wsURL(t, srv, ""), nil)
		if err != nil {
			t.Fatalf("dial without origin: %v", err)
		}
		conn.Close()
	})
}
