package search

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/catalinahotel/booking-api/internal/pkg/hotelapi"
	"github.com/catalinahotel/booking-api/internal/pkg/response"
)

func newTestHandler(api *fakeInventory) *Handler {
	store := NewMemorySessionStore(time.Minute)
	return NewHandler(NewService(api, store))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) response.Response {
	t.Helper()
	var envelope struct {
		Success bool                `json:"success"`
		Data    json.RawMessage     `json:"data"`
		Error   *response.ErrorInfo `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if data != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return response.Response{Success: envelope.Success, Error: envelope.Error}
}

func postSearch(h *Handler, sessionID string, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(payload))
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	return rec
}

func TestSearchHandlerSuccess(t *testing.T) {
	api := &fakeInventory{rooms: []hotelapi.Room{{ID: "r1", Title: "Suite", Price: 100}}}
	h := newTestHandler(api)

	rec := postSearch(h, "s1", map[string]interface{}{
		"check_in":  "2025-03-10",
		"check_out": "2025-03-12",
		"adults":    2,
		"children":  0,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(SessionHeader) != "s1" {
		t.Fatalf("expected session header echoed, got %q", rec.Header().Get(SessionHeader))
	}

	var results SearchResponse
	decodeEnvelope(t, rec, &results)
	if results.Nights != 2 || len(results.Rooms) != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSearchHandlerMintsSessionID(t *testing.T) {
	api := &fakeInventory{rooms: []hotelapi.Room{}}
	h := newTestHandler(api)

	rec := postSearch(h, "", map[string]interface{}{
		"check_in":  "2025-03-10",
		"check_out": "2025-03-12",
		"adults":    1,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(SessionHeader) == "" {
		t.Fatal("expected a minted session id in the response header")
	}
}

func TestSearchHandlerValidationStopsBeforeNetwork(t *testing.T) {
	cases := []struct {
		name string
		body map[string]interface{}
		code string
	}{
		{
			"missing dates",
			map[string]interface{}{"adults": 2},
			"MISSING_DATES",
		},
		{
			"reversed dates",
			map[string]interface{}{"check_in": "2025-03-12", "check_out": "2025-03-10", "adults": 2},
			"INVALID_DATE_ORDER",
		},
		{
			"no adults",
			map[string]interface{}{"check_in": "2025-03-10", "check_out": "2025-03-12", "adults": 0},
			"NO_ADULT_GUEST",
		},
	}

	for _, c := range cases {
		api := &fakeInventory{}
		h := newTestHandler(api)

		rec := postSearch(h, "s1", c.body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", c.name, rec.Code)
		}
		env := decodeEnvelope(t, rec, nil)
		if env.Error == nil || env.Error.Code != c.code {
			t.Fatalf("%s: expected code %s, got %+v", c.name, c.code, env.Error)
		}
		if api.callCount() != 0 {
			t.Fatalf("%s: validation failure must not reach the inventory", c.name)
		}
	}
}

func TestSearchHandlerUpstreamFailure(t *testing.T) {
	api := &fakeInventory{err: &hotelapi.APIError{StatusCode: http.StatusInternalServerError}}
	h := newTestHandler(api)

	rec := postSearch(h, "s1", map[string]interface{}{
		"check_in":  "2025-03-10",
		"check_out": "2025-03-12",
		"adults":    2,
	})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec, nil)
	if env.Error == nil || env.Error.Code != "SEARCH_FAILED" {
		t.Fatalf("expected SEARCH_FAILED, got %+v", env.Error)
	}
}

func TestGetSessionRequiresHeader(t *testing.T) {
	h := newTestHandler(&fakeInventory{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/session", nil)
	rec := httptest.NewRecorder()
	h.GetSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetConstraints(t *testing.T) {
	h := newTestHandler(&fakeInventory{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/constraints?check_in=2025-05-01", nil)
	rec := httptest.NewRecorder()
	h.GetConstraints(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var constraints ConstraintsResponse
	decodeEnvelope(t, rec, &constraints)
	if constraints.MinCheckIn != time.Now().Format("2006-01-02") {
		t.Fatalf("expected today as min check-in, got %q", constraints.MinCheckIn)
	}
	if constraints.MinCheckOut != "2025-05-01" {
		t.Fatalf("expected chosen check-in as min check-out, got %q", constraints.MinCheckOut)
	}
}
