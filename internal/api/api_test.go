package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/MJE43/roulette-edge-go/internal/api"
	"github.com/MJE43/roulette-edge-go/internal/predict"
	"github.com/MJE43/roulette-edge-go/internal/session"
	"github.com/MJE43/roulette-edge-go/internal/store"
)

func newTestRouter(t *testing.T, journal store.DB) http.Handler {
	t.Helper()
	sessions := session.NewManager(predict.Options{DecayFactor: 1.0})
	return api.NewServer(sessions, journal).Routes()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp api.CreateSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("session ID missing")
	}
	return resp.ID
}

func recordSpin(t *testing.T, router http.Handler, id string, position int, dealer string) {
	t.Helper()
	pos := position
	rec := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/spins",
		api.RecordSpinRequest{Position: &pos, Dealer: dealer})
	if rec.Code != http.StatusOK {
		t.Fatalf("record spin status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	router := newTestRouter(t, nil)

	bad := 1.5
	rec := doJSON(t, router, http.MethodPost, "/sessions", api.CreateSessionRequest{DecayFactor: &bad})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error.Type != api.ErrTypeValidation {
		t.Errorf("error type = %q, want %q", resp.Error.Type, api.ErrTypeValidation)
	}
}

func TestRecordSpinValidation(t *testing.T) {
	router := newTestRouter(t, nil)
	id := createSession(t, router)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing position", map[string]any{"dealer": "alice"}, http.StatusBadRequest},
		{"position too large", map[string]any{"position": 37}, http.StatusBadRequest},
		{"position negative", map[string]any{"position": -1}, http.StatusBadRequest},
		{"not a number", map[string]any{"position": "seventeen"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/spins", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestUnknownSession(t *testing.T) {
	router := newTestRouter(t, nil)

	pos := 5
	rec := doJSON(t, router, http.MethodPost, "/sessions/nope/spins", api.RecordSpinRequest{Position: &pos})
	if rec.Code != http.StatusNotFound {
		t.Errorf("record status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/sessions/nope/prediction", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("prediction status = %d, want 404", rec.Code)
	}
}

func TestPredictionLifecycle(t *testing.T) {
	router := newTestRouter(t, nil)
	id := createSession(t, router)

	// No history yet.
	rec := doJSON(t, router, http.MethodGet, "/sessions/"+id+"/prediction", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body = %s", rec.Code, rec.Body.String())
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errResp.Error.Type != api.ErrTypeNoHistory {
		t.Errorf("error type = %q, want %q", errResp.Error.Type, api.ErrTypeNoHistory)
	}

	// [0, 32]: the upcoming spin is clockwise, which has no samples yet.
	recordSpin(t, router, id, 0, "")
	recordSpin(t, router, id, 32, "")
	rec = doJSON(t, router, http.MethodGet, "/sessions/"+id+"/prediction", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body = %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errResp.Error.Type != api.ErrTypeNoDistanceData {
		t.Errorf("error type = %q, want %q", errResp.Error.Type, api.ErrTypeNoDistanceData)
	}

	// Third spin fills the clockwise table; spin #4 predicts anticlockwise.
	recordSpin(t, router, id, 15, "")
	rec = doJSON(t, router, http.MethodGet, "/sessions/"+id+"/prediction?n=15", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}

	var resp api.PredictionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != id {
		t.Errorf("session id = %q, want %q", resp.SessionID, id)
	}
	if resp.Report.SpinIndex != 4 {
		t.Errorf("spin index = %d, want 4", resp.Report.SpinIndex)
	}
	if len(resp.Report.Candidates) != 1 || resp.Report.Candidates[0].Position != 19 {
		t.Errorf("candidates = %+v, want single pocket 19", resp.Report.Candidates)
	}
}

func TestPredictionQueryValidation(t *testing.T) {
	router := newTestRouter(t, nil)
	id := createSession(t, router)
	recordSpin(t, router, id, 0, "")

	for _, q := range []string{"n=-1", "n=99", "n=abc"} {
		rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/sessions/%s/prediction?%s", id, q), nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q status = %d, want 400", q, rec.Code)
		}
	}
}

func TestSpinsAreJournaled(t *testing.T) {
	journal, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer journal.Close()
	if err := journal.Migrate(); err != nil {
		t.Fatalf("migrate journal: %v", err)
	}

	router := newTestRouter(t, journal)
	id := createSession(t, router)
	recordSpin(t, router, id, 17, "alice")
	recordSpin(t, router, id, 3, "")

	count, err := journal.CountSpins(id)
	if err != nil {
		t.Fatalf("CountSpins failed: %v", err)
	}
	if count != 2 {
		t.Errorf("journaled spins = %d, want 2", count)
	}

	spins, err := journal.GetSpins(id, 10, 0)
	if err != nil {
		t.Fatalf("GetSpins failed: %v", err)
	}
	if spins[0].Position != 17 || spins[0].Dealer != "alice" {
		t.Errorf("first journaled spin = %+v", spins[0])
	}
}

func TestListSessions(t *testing.T) {
	router := newTestRouter(t, nil)
	a := createSession(t, router)
	createSession(t, router)

	rec := doJSON(t, router, http.MethodGet, "/sessions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Sessions []session.Summary `json:"sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(resp.Sessions))
	}
	if resp.Sessions[0].ID != a {
		t.Errorf("first listed session = %q, want %q", resp.Sessions[0].ID, a)
	}
}
