package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecoledger/ecoledger/internal/app/engine"
	"github.com/ecoledger/ecoledger/internal/domain"
	"github.com/ecoledger/ecoledger/internal/infra/store"
)

// ─── Ledger API Tests ───────────────────────────────────────────────────────

func setupServer(t *testing.T) (*Server, *store.DB) {
	t.Helper()
	db, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clock := func() time.Time {
		d, _ := domain.ParseDay("2024-06-15")
		return d
	}
	eng := engine.New(context.Background(), engine.DefaultConfig(), store.NewStateStore(db),
		engine.WithNotifier(store.NewQueueNotifier(db)), engine.WithClock(clock))

	return NewServer(eng, db), db
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return w, resp
}

func TestAPI_Health(t *testing.T) {
	srv, _ := setupServer(t)
	w, resp := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
}

func TestAPI_RecordAndSummary(t *testing.T) {
	srv, _ := setupServer(t)
	h := srv.Handler()

	// Baseline first, then an actual reduction.
	w, _ := doJSON(t, h, http.MethodPost, "/api/ledger/record", map[string]interface{}{
		"current_tonnes": 0.010,
		"date":           "2024-06-15",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("baseline: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w, resp := doJSON(t, h, http.MethodPost, "/api/ledger/record", map[string]interface{}{
		"current_tonnes":  0.008,
		"previous_tonnes": 0.010,
		"date":            "2024-06-15",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("record: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	totals := resp["totals"].(map[string]interface{})
	if totals["lifetime_tokens"] != 20.0 {
		t.Errorf("lifetime_tokens = %v, want 20", totals["lifetime_tokens"])
	}

	_, resp = doJSON(t, h, http.MethodGet, "/api/ledger/summary", nil)
	totals = resp["totals"].(map[string]interface{})
	if totals["today_tokens"] != 20.0 {
		t.Errorf("today_tokens = %v, want 20", totals["today_tokens"])
	}
}

func TestAPI_RecordRejectsUnrealistic(t *testing.T) {
	srv, _ := setupServer(t)

	w, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/ledger/record", map[string]interface{}{
		"current_tonnes":  0.0,
		"previous_tonnes": 1.5,
		"date":            "2024-06-15",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if resp["error"] == nil {
		t.Error("expected error payload")
	}
}

func TestAPI_RecordInvalidBody(t *testing.T) {
	srv, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ledger/record", bytes.NewBufferString("{nope"))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAPI_History(t *testing.T) {
	srv, _ := setupServer(t)
	h := srv.Handler()

	for i := 0; i < 3; i++ {
		doJSON(t, h, http.MethodPost, "/api/ledger/record", map[string]interface{}{
			"current_tonnes":  0.009,
			"previous_tonnes": 0.010,
			"date":            fmt.Sprintf("2024-06-%02d", 13+i),
			"silent":          true,
		})
	}

	_, resp := doJSON(t, h, http.MethodGet, "/api/ledger/history", nil)
	if resp["count"] != 3.0 {
		t.Fatalf("count = %v, want 3", resp["count"])
	}
	history := resp["history"].([]interface{})
	head := history[0].(map[string]interface{})
	if head["date"] != "2024-06-15" {
		t.Errorf("head date = %v, want newest first", head["date"])
	}
}

func TestAPI_Streak(t *testing.T) {
	srv, _ := setupServer(t)
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/ledger/record", map[string]interface{}{
		"current_tonnes":  0.009,
		"previous_tonnes": 0.010,
		"date":            "2024-06-14",
		"silent":          true,
	})
	doJSON(t, h, http.MethodPost, "/api/ledger/record", map[string]interface{}{
		"current_tonnes":  0.008,
		"previous_tonnes": 0.009,
		"date":            "2024-06-15",
		"silent":          true,
	})

	_, resp := doJSON(t, h, http.MethodGet, "/api/streak", nil)
	if resp["streak_days"] != 2.0 {
		t.Errorf("streak_days = %v, want 2", resp["streak_days"])
	}
	if resp["last_earned_date"] != "2024-06-15" {
		t.Errorf("last_earned_date = %v", resp["last_earned_date"])
	}
}

func TestAPI_Achievements(t *testing.T) {
	srv, _ := setupServer(t)
	h := srv.Handler()

	// 10 kg saved = 100 tokens: unlocks green_starter.
	doJSON(t, h, http.MethodPost, "/api/ledger/record", map[string]interface{}{
		"current_tonnes":  0.000,
		"previous_tonnes": 0.010,
		"date":            "2024-06-15",
		"silent":          true,
	})

	_, resp := doJSON(t, h, http.MethodGet, "/api/achievements", nil)
	if resp["total_count"] != 4.0 {
		t.Fatalf("total_count = %v, want 4", resp["total_count"])
	}
	if resp["unlocked_count"] != 1.0 {
		t.Errorf("unlocked_count = %v, want 1", resp["unlocked_count"])
	}
}

func TestAPI_Leaderboard(t *testing.T) {
	srv, _ := setupServer(t)

	_, resp := doJSON(t, srv.Handler(), http.MethodGet, "/api/leaderboard", nil)
	leaders := resp["leaders"].([]interface{})
	if len(leaders) != 5 {
		t.Fatalf("leaders = %d, want 5", len(leaders))
	}
	first := leaders[0].(map[string]interface{})
	if first["rank"] != 1.0 {
		t.Errorf("first rank = %v, want 1", first["rank"])
	}
}

func TestAPI_NotificationFlow(t *testing.T) {
	srv, _ := setupServer(t)
	h := srv.Handler()

	// A non-silent accepted event queues a celebratory notification.
	doJSON(t, h, http.MethodPost, "/api/ledger/record", map[string]interface{}{
		"current_tonnes":  0.009,
		"previous_tonnes": 0.010,
		"date":            "2024-06-15",
	})

	_, resp := doJSON(t, h, http.MethodGet, "/api/notifications", nil)
	pending := resp["notifications"].([]interface{})
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	id := pending[0].(map[string]interface{})["id"].(float64)

	w, _ := doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/notifications/%d/shown", int64(id)), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mark shown: expected 200, got %d", w.Code)
	}

	_, resp = doJSON(t, h, http.MethodGet, "/api/notifications", nil)
	if pending := resp["notifications"]; pending != nil {
		if len(pending.([]interface{})) != 0 {
			t.Error("notification still pending after shown")
		}
	}
}

func TestAPI_DashboardSnapshot(t *testing.T) {
	srv, _ := setupServer(t)

	_, resp := doJSON(t, srv.Handler(), http.MethodGet, "/api/summary", nil)
	for _, key := range []string{"totals", "streak", "achievements", "leaderboard"} {
		if resp[key] == nil {
			t.Errorf("dashboard snapshot missing %q", key)
		}
	}
}

func TestAPI_Version(t *testing.T) {
	srv, _ := setupServer(t)
	_, resp := doJSON(t, srv.Handler(), http.MethodGet, "/api/version", nil)
	if resp["version"] != Version {
		t.Errorf("version = %v, want %v", resp["version"], Version)
	}
}
