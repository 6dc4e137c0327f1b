package ginserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staybcn/internal/app/bookingflow"
	"staybcn/internal/domain/catalog"
	catalogmemory "staybcn/internal/infra/catalog/memory"
	"staybcn/internal/infra/config"
	"staybcn/internal/infra/obs"
	sessionmemory "staybcn/internal/infra/session/memory"
)

var testClock = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	units := catalogmemory.NewCatalog()
	for _, params := range []catalog.CreateUnitParams{
		{
			ID:          "gracia-401",
			Title:       "Terraza Privada",
			TitleEN:     "Private Terrace",
			NightlyRate: 210,
			CleaningFee: 55,
			Capacity:    4,
			BlockedDates: []time.Time{
				time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			ID:          "gracia-402",
			Title:       "Ático con Terraza",
			NightlyRate: 180,
			CleaningFee: 55,
			Capacity:    4,
		},
	} {
		unit, err := catalog.NewUnit(params)
		if err != nil {
			t.Fatalf("unit fixture invalid: %v", err)
		}
		units.Add(unit)
	}

	flow := &bookingflow.Service{
		Catalog:        units,
		Sessions:       sessionmemory.NewStore(0),
		Notifier:       bookingflow.NopNotifier{},
		DefaultCityTax: 2,
		Now:            func() time.Time { return testClock },
	}

	srv := NewServer(config.Config{Env: "test", HTTPAddr: ":0"}, obs.Middleware{}, obs.HealthHandlers{}, Handlers{
		Unit:    UnitHandler{Catalog: units, Now: func() time.Time { return testClock }},
		Session: SessionHandler{Flow: flow},
		Booking: BookingHandler{Flow: flow},
	})
	return srv.Handler
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
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
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestListUnits(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/units", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	decode(t, rec, &body)
	if len(body.Items) != 2 || body.Items[0].ID != "gracia-401" {
		t.Errorf("unexpected units payload: %s", rec.Body.String())
	}
}

func TestGetUnit_LocalizedTitle(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/units/gracia-401?lang=en", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var unit struct {
		DisplayTitle string `json:"display_title"`
	}
	decode(t, rec, &unit)
	if unit.DisplayTitle != "Private Terrace" {
		t.Errorf("expected the English title, got %q", unit.DisplayTitle)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/units/gracia-401", nil)
	decode(t, rec, &unit)
	if unit.DisplayTitle != "Terraza Privada" {
		t.Errorf("expected the default title, got %q", unit.DisplayTitle)
	}
}

func TestUnitCalendar(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/units/gracia-401/calendar?from=2025-10-04&to=2025-10-06", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var cal struct {
		UnitID string `json:"unit_id"`
		From   string `json:"from"`
		To     string `json:"to"`
		Days   []struct {
			Date    string `json:"date"`
			Blocked bool   `json:"blocked"`
		} `json:"days"`
	}
	decode(t, rec, &cal)
	if cal.UnitID != "gracia-401" {
		t.Errorf("unexpected unit id %q", cal.UnitID)
	}
	// [from, to): the to date itself is not a stay day
	if len(cal.Days) != 2 {
		t.Fatalf("expected 2 days, got %d: %s", len(cal.Days), rec.Body.String())
	}
	if cal.Days[0].Date != "2025-10-04" || cal.Days[0].Blocked {
		t.Errorf("expected 2025-10-04 open, got %+v", cal.Days[0])
	}
	if cal.Days[1].Date != "2025-10-05" || !cal.Days[1].Blocked {
		t.Errorf("expected 2025-10-05 blocked, got %+v", cal.Days[1])
	}
}

func TestUnitCalendar_DefaultWindow(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/units/gracia-401/calendar", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var cal struct {
		From string `json:"from"`
		Days []struct {
			Date    string `json:"date"`
			Blocked bool   `json:"blocked"`
		} `json:"days"`
	}
	decode(t, rec, &cal)
	if cal.From != "2025-09-01" {
		t.Errorf("expected the window to start today, got %q", cal.From)
	}
	if len(cal.Days) != 90 {
		t.Fatalf("expected 90 days, got %d", len(cal.Days))
	}
	blocked := map[string]bool{}
	for _, d := range cal.Days {
		if d.Blocked {
			blocked[d.Date] = true
		}
	}
	if !blocked["2025-10-05"] || len(blocked) != 1 {
		t.Errorf("expected only 2025-10-05 blocked, got %v", blocked)
	}
}

func TestUnitCalendar_InvalidWindow(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/units/gracia-401/calendar?from=2025-10-06&to=2025-10-06", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/v1/units/gracia-401/calendar?from=not-a-date", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/v1/units/missing/calendar", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetUnit_NotFound(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/units/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestSessionFlow(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var session struct {
		ID    string `json:"id"`
		State string `json:"state"`
		Draft struct {
			UnitID string `json:"unit_id"`
		} `json:"draft"`
		Derived struct {
			Nights        int  `json:"nights"`
			IsConfirmable bool `json:"is_confirmable"`
		} `json:"derived"`
	}
	decode(t, rec, &session)
	if session.Draft.UnitID != "gracia-401" {
		t.Errorf("expected first unit preselected, got %q", session.Draft.UnitID)
	}
	if session.Derived.IsConfirmable {
		t.Error("a fresh session must not be confirmable")
	}

	// confirming an incomplete draft lists the violated conditions
	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+session.ID+"/confirm", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var failed struct {
		Violations []struct {
			Code  string `json:"code"`
			Class string `json:"class"`
		} `json:"violations"`
	}
	decode(t, rec, &failed)
	if len(failed.Violations) == 0 {
		t.Fatal("expected violations in the 422 body")
	}

	rec = do(t, h, http.MethodPatch, "/api/v1/sessions/"+session.ID, map[string]any{
		"name":           "Núria Ferrer",
		"email":          "nuria@example.com",
		"rules_accepted": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+session.ID+"/confirm", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var confirmation struct {
		Code string `json:"code"`
	}
	decode(t, rec, &confirmation)
	if confirmation.Code == "" {
		t.Error("expected a confirmation code")
	}

	// the draft is frozen once confirmed
	rec = do(t, h, http.MethodPatch, "/api/v1/sessions/"+session.ID, map[string]any{"adults": 3})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 after confirm, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/sessions/"+session.ID+"/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var after struct {
		State string `json:"state"`
	}
	decode(t, rec, &after)
	if after.State != "SELECTING" {
		t.Errorf("expected SELECTING after reset, got %q", after.State)
	}
}

func TestSession_NotFound(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/sessions/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCreateBooking(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/bookings", map[string]any{
		"unit_id":        "gracia-401",
		"check_in":       "2025-09-10",
		"check_out":      "2025-09-13",
		"adults":         3,
		"city_tax_rate":  2,
		"name":           "Núria Ferrer",
		"email":          "nuria@example.com",
		"rules_accepted": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var conf struct {
		Code  string `json:"code"`
		Price struct {
			Total float64 `json:"total"`
		} `json:"price"`
	}
	decode(t, rec, &conf)
	if conf.Price.Total != 703 {
		t.Errorf("expected total 703, got %v", conf.Price.Total)
	}
}

func TestCreateBooking_IncompleteIs422(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/bookings", map[string]any{
		"unit_id": "gracia-401",
		"adults":  2,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var failed struct {
		Violations []struct {
			Code string `json:"code"`
		} `json:"violations"`
	}
	decode(t, rec, &failed)
	codes := map[string]bool{}
	for _, v := range failed.Violations {
		codes[v.Code] = true
	}
	for _, want := range []string{"dates_missing", "name_required", "email_required", "rules_not_accepted"} {
		if !codes[want] {
			t.Errorf("missing violation %s in %v", want, codes)
		}
	}
}

func TestCreateBooking_NegativeTaxIs400(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/bookings", map[string]any{
		"unit_id":       "gracia-401",
		"city_tax_rate": -1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLivez(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/livez", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
