package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"rangepresets/session"
)

func dialWS(t *testing.T, srv *httptest.Server, path string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	return websocket.DefaultDialer.Dial(wsURL, nil)
}

// readUntil reads events until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(session.Event) bool) session.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var evt session.Event
		if err := conn.ReadJSON(&evt); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if match(evt) {
			return evt
		}
	}
}

func TestWSNotFound(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	_, resp, err := dialWS(t, srv, "/api/sessions/nonexistent/ws")
	if err == nil {
		t.Fatal("expected error connecting to nonexistent session")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp)
	}
}

func TestWSJournalReplay(t *testing.T) {
	srv, mgr := newTestServerWithManager(t)
	defer srv.Close()

	s, err := mgr.Create("replay-test", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.AddFromCurrent("full"); err != nil {
		t.Fatalf("AddFromCurrent: %v", err)
	}

	conn, _, err := dialWS(t, srv, "/api/sessions/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()

	evt := readUntil(t, conn, func(e session.Event) bool { return e.Type == session.EventPreset })
	if evt.Message != "Saved frame range as 'full'" || evt.Selected != "full" {
		t.Fatalf("unexpected replayed event %+v", evt)
	}
}

func TestWSLiveChanges(t *testing.T) {
	srv, mgr := newTestServerWithManager(t)
	defer srv.Close()

	s, err := mgr.Create("live-test", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	conn, _, err := dialWS(t, srv, "/api/sessions/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()

	base := srv.URL + "/api/sessions/" + s.ID
	addPreset(t, base, "a")
	addPreset(t, base, "a")

	evt := readUntil(t, conn, func(e session.Event) bool { return e.Type == session.EventWarning })
	if evt.Message != "Preset 'a' already exists." || len(evt.Presets) != 1 {
		t.Fatalf("unexpected warning event %+v", evt)
	}
}

func TestWSRefresh(t *testing.T) {
	srv, mgr := newTestServerWithManager(t)
	defer srv.Close()

	s, err := mgr.Create("refresh-test", &[2]int{5, 15})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	conn, _, err := dialWS(t, srv, "/api/sessions/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]string{"type": "refresh"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	evt := readUntil(t, conn, func(e session.Event) bool { return e.Type == session.EventPreset })
	if evt.FrameStart != 5 || evt.FrameEnd != 15 {
		t.Fatalf("unexpected refresh event %+v", evt)
	}
}

func TestWSClosedOnSessionEnd(t *testing.T) {
	srv, mgr := newTestServerWithManager(t)
	defer srv.Close()

	s, err := mgr.Create("close-test", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	conn, _, err := dialWS(t, srv, "/api/sessions/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	defer conn.Close()

	mgr.Kill(s.ID)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt session.Event
	if err := conn.ReadJSON(&evt); err != nil {
		// Closed without a JSON message is acceptable too.
		return
	}
	if evt.Type != session.EventClosed {
		t.Fatalf("expected 'closed' event, got %q", evt.Type)
	}
}

func TestWSClientDisplacement(t *testing.T) {
	srv, mgr := newTestServerWithManager(t)
	defer srv.Close()

	s, err := mgr.Create("displace-test", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	conn1, _, err := dialWS(t, srv, "/api/sessions/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("conn1 dial: %v", err)
	}
	defer conn1.Close()

	conn2, _, err := dialWS(t, srv, "/api/sessions/"+s.ID+"/ws")
	if err != nil {
		t.Fatalf("conn2 dial: %v", err)
	}
	defer conn2.Close()

	// The server closes conn1 without sending anything once conn2 takes over.
	conn1.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt session.Event
	err = conn1.ReadJSON(&evt)
	if err == nil {
		t.Fatalf("expected conn1 to be closed, got event %+v", evt)
	}
	if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
		t.Fatal("conn1 was not closed after displacement")
	}

	addPreset(t, srv.URL+"/api/sessions/"+s.ID, "after-displace")
	got := readUntil(t, conn2, func(e session.Event) bool { return e.Type == session.EventPreset })
	if got.Selected != "after-displace" {
		t.Fatalf("unexpected event on conn2 %+v", got)
	}
	if !s.Info().Connected {
		t.Fatal("expected session to stay connected through conn2")
	}
}
