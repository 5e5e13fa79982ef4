package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"rangepresets/api"
	"rangepresets/session"
)

func newTestManager() *session.Manager {
	return session.NewManager(session.Options{
		DefaultFrameStart: 1,
		DefaultFrameEnd:   250,
		JournalSize:       32,
	}, nil)
}

func newTestServerWithManager(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()
	mgr := newTestManager()
	srv := httptest.NewServer(api.RegisterRoutes(mgr, api.Options{LastRangeLength: 100}, nil))
	return srv, mgr
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newTestServerWithManager(t)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createSession(t *testing.T, srv *httptest.Server, body string) string {
	t.Helper()
	resp := do(t, http.MethodPost, srv.URL+"/api/sessions", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d", resp.StatusCode)
	}
	var s struct {
		ID string `json:"id"`
	}
	decode(t, resp, &s)
	return s.ID
}

func TestListSessionsEmpty(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := do(t, http.MethodGet, srv.URL+"/api/sessions", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected json content-type, got %q", ct)
	}
	var sessions []interface{}
	decode(t, resp, &sessions)
	if len(sessions) != 0 {
		t.Fatalf("expected 0 sessions, got %d", len(sessions))
	}
}

func TestCreateSession201(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := do(t, http.MethodPost, srv.URL+"/api/sessions", `{"name":"shot_010"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var s map[string]interface{}
	decode(t, resp, &s)
	if s["name"] != "shot_010" {
		t.Fatalf("expected name 'shot_010', got %v", s["name"])
	}
	if id, _ := s["id"].(string); id == "" {
		t.Fatal("expected non-empty id")
	}
}

func TestCreateSessionWithRange(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	id := createSession(t, srv, `{"name":"s","frame_start":1001,"frame_end":1050}`)
	resp := do(t, http.MethodGet, srv.URL+"/api/sessions/"+id+"/scene", "")
	var scene session.Scene
	decode(t, resp, &scene)
	if scene.FrameStart != 1001 || scene.FrameEnd != 1050 {
		t.Fatalf("unexpected range %d-%d", scene.FrameStart, scene.FrameEnd)
	}
}

func TestCreateSessionBadRequests(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	for _, body := range []string{`not json`, `{"name":""}`, `{"name":"x","frame_start":3}`} {
		resp := do(t, http.MethodPost, srv.URL+"/api/sessions", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestCreateSessionConflict(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	createSession(t, srv, `{"name":"dup"}`)
	resp := do(t, http.MethodPost, srv.URL+"/api/sessions", `{"name":"dup"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestKillSession(t *testing.T) {
	srv, mgr := newTestServerWithManager(t)
	defer srv.Close()

	id := createSession(t, srv, `{"name":"bye"}`)
	resp := do(t, http.MethodDelete, srv.URL+"/api/sessions/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if _, ok := mgr.Get(id); ok {
		t.Fatal("session still present after delete")
	}

	resp = do(t, http.MethodDelete, srv.URL+"/api/sessions/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.StatusCode)
	}
}

func TestUnknownSession404(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := do(t, http.MethodGet, srv.URL+"/api/sessions/nope/presets", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["error"] != "session_not_found" {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestListSessionsWhileSessionChanges(t *testing.T) {
	srv, mgr := newTestServerWithManager(t)
	defer srv.Close()

	s, err := mgr.Create("busy", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			s.SetFrameRange(i, i+24)
		}
	}()
	for i := 0; i < 10; i++ {
		resp := do(t, http.MethodGet, srv.URL+"/api/sessions", "")
		var infos []session.Info
		decode(t, resp, &infos)
		if len(infos) != 1 || infos[0].ID != s.ID {
			t.Fatalf("unexpected sessions %+v", infos)
		}
	}
	wg.Wait()
}
