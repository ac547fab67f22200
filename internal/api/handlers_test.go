package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zapponejosh/thai-calendar-api/internal/config"
	"github.com/zapponejosh/thai-calendar-api/internal/database"
	"github.com/zapponejosh/thai-calendar-api/internal/locale"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

const testAPIKey = "test-key-for-birth-records"

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// testEnv bundles a router with the handlers behind it.
type testEnv struct {
	db       *database.DB
	cfg      *config.Config
	handlers *Handlers
	router   http.Handler
}

// setupTest creates a fresh test environment on an in-memory database.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, log)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	cfg := &config.Config{
		Port:           8080,
		Env:            config.EnvDevelopment,
		DatabasePath:   ":memory:",
		APIKey:         testAPIKey,
		LogLevel:       "error",
		LogFormat:      "text",
		DefaultLang:    locale.Thai,
		MaxRangeDays:   90,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	tr, err := locale.New(cfg.DefaultLang)
	if err != nil {
		t.Fatalf("load translations: %v", err)
	}

	h := NewHandlers(db, tr, NewMetrics(), cfg)
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	return &testEnv{
		db:       db,
		cfg:      cfg,
		handlers: h,
		router:   SetupRoutes(h, limiter, cfg, log),
	}
}

// do sends a request through the full router.
func (env *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func authHeader() map[string]string {
	return map[string]string{"X-API-Key": testAPIKey}
}

// decodeResponse unpacks the envelope and decodes Data into v when non-nil.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) Response {
	t.Helper()

	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *ErrorInfo      `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	if v != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, v); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return Response{Success: raw.Success, Error: raw.Error}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

// =============================================================================
// HEALTH AND METRICS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	var data struct {
		Status    string         `json:"status"`
		Languages []string       `json:"languages"`
		Supported map[string]int `json:"supported"`
	}
	resp := decodeResponse(t, rec, &data)
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if data.Status != "healthy" {
		t.Errorf("status = %q, want healthy", data.Status)
	}
	if data.Supported["first_year"] != 1757 || data.Supported["last_year"] != 2077 {
		t.Errorf("supported = %v, want 1757..2077", data.Supported)
	}
}

func TestMetrics(t *testing.T) {
	env := setupTest(t)

	env.do(t, http.MethodGet, "/api/v1/convert/2017-09-01", nil, nil)
	env.do(t, http.MethodGet, "/api/v1/convert/2200-01-01", nil, nil)

	rec := env.do(t, http.MethodGet, "/metrics", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	body := rec.Body.String()
	for _, want := range []string{
		`thaicalendar_http_requests_total{method="GET",route="/api/v1/convert/{date}",status="200"} 1`,
		`thaicalendar_http_requests_total{method="GET",route="/api/v1/convert/{date}",status="422"} 1`,
		`thaicalendar_conversions_total{outcome="ok"} 1`,
		`thaicalendar_conversions_total{outcome="unconvertible"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

// =============================================================================
// CONVERSION
// =============================================================================

func TestConvertDate(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name        string
		path        string
		headers     map[string]string
		wantLang    string
		wantDay     int
		wantMonth   int
		wantSummary string
	}{
		{
			name:        "thai default",
			path:        "/api/v1/convert/2017-09-01",
			wantLang:    "th",
			wantDay:     11,
			wantMonth:   10,
			wantSummary: "วันศุกร์ ขึ้น 11 ค่ำ เดือน 10 ปี ระกา จ.ศ.1379",
		},
		{
			name:        "english by query",
			path:        "/api/v1/convert/2017-09-01?lang=en",
			wantLang:    "en",
			wantDay:     11,
			wantMonth:   10,
			wantSummary: "Friday, waxing day 11 of month 10, year of the Rooster, CS 1379",
		},
		{
			name:      "english by header",
			path:      "/api/v1/convert/2017-09-01",
			headers:   map[string]string{"Accept-Language": "en-US,en;q=0.9"},
			wantLang:  "en",
			wantDay:   11,
			wantMonth: 10,
		},
		{
			name:      "before dawn",
			path:      "/api/v1/convert/1941-01-01?time=00:00&lang=en",
			wantLang:  "en",
			wantDay:   3,
			wantMonth: 2,
		},
		{
			name:      "after dawn",
			path:      "/api/v1/convert/1941-01-01?time=12:00&lang=en",
			wantLang:  "en",
			wantDay:   4,
			wantMonth: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil, tt.headers)
			assertStatus(t, rec, http.StatusOK)

			var reading locale.Reading
			decodeResponse(t, rec, &reading)

			if reading.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", reading.Language, tt.wantLang)
			}
			if reading.LunarDay != tt.wantDay {
				t.Errorf("LunarDay = %d, want %d", reading.LunarDay, tt.wantDay)
			}
			if reading.LunarMonth != tt.wantMonth {
				t.Errorf("LunarMonth = %d, want %d", reading.LunarMonth, tt.wantMonth)
			}
			if tt.wantSummary != "" && reading.Summary != tt.wantSummary {
				t.Errorf("Summary = %q, want %q", reading.Summary, tt.wantSummary)
			}
		})
	}
}

func TestConvertDate_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantErr  string
	}{
		{"malformed date", "/api/v1/convert/01-09-2017", http.StatusBadRequest, CodeBadRequest},
		{"impossible date", "/api/v1/convert/2017-02-30", http.StatusBadRequest, CodeBadRequest},
		{"malformed time", "/api/v1/convert/2017-09-01?time=25:00", http.StatusBadRequest, CodeBadRequest},
		{"unsupported language", "/api/v1/convert/2017-09-01?lang=fr", http.StatusBadRequest, CodeBadRequest},
		{"before the tables", "/api/v1/convert/1756-04-01", http.StatusUnprocessableEntity, CodeUnconvertible},
		{"after the tables", "/api/v1/convert/2078-01-01", http.StatusUnprocessableEntity, CodeUnconvertible},
		{"reform gap", "/api/v1/convert/1940-02-15", http.StatusUnprocessableEntity, CodeUnconvertible},
		{"no phase", "/api/v1/convert/1756-01-01?time=00:00", http.StatusUnprocessableEntity, CodeUnconvertible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil, nil)
			assertStatus(t, rec, tt.wantCode)

			resp := decodeResponse(t, rec, nil)
			if resp.Success {
				t.Error("Success = true, want false")
			}
			if resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("Error = %+v, want code %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestConvertToday(t *testing.T) {
	env := setupTest(t)
	// 17:00 UTC on 31 August is already 1 September in Bangkok.
	env.handlers.clock = fixedClock{time.Date(2017, 8, 31, 17, 0, 0, 0, time.UTC)}

	rec := env.do(t, http.MethodGet, "/api/v1/convert/today", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	var reading locale.Reading
	decodeResponse(t, rec, &reading)

	if reading.Date != "2017-09-01" {
		t.Errorf("Date = %q, want 2017-09-01", reading.Date)
	}
	if reading.Time != "00:00" {
		t.Errorf("Time = %q, want 00:00", reading.Time)
	}
}

func TestConvertRange(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/range?start=2017-08-30&end=2017-09-02", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	var data struct {
		Count    int              `json:"count"`
		Readings []locale.Reading `json:"readings"`
	}
	decodeResponse(t, rec, &data)

	if data.Count != 4 || len(data.Readings) != 4 {
		t.Fatalf("count = %d (%d readings), want 4", data.Count, len(data.Readings))
	}
	if data.Readings[2].Date != "2017-09-01" || data.Readings[2].LunarDay != 11 {
		t.Errorf("readings[2] = %s day %d, want 2017-09-01 day 11", data.Readings[2].Date, data.Readings[2].LunarDay)
	}
	for i, r := range data.Readings {
		if r.Time != "12:00" {
			t.Errorf("readings[%d].Time = %q, want 12:00", i, r.Time)
		}
	}
}

func TestConvertRange_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name     string
		query    string
		wantCode int
	}{
		{"missing end", "start=2017-08-30", http.StatusBadRequest},
		{"reversed", "start=2017-09-02&end=2017-08-30", http.StatusBadRequest},
		{"too long", "start=2017-01-01&end=2017-12-31", http.StatusBadRequest},
		{"bad start", "start=yesterday&end=2017-08-30", http.StatusBadRequest},
		{"crosses the reform gap", "start=1940-03-30&end=1940-04-02", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/range?"+tt.query, nil, nil)
			assertStatus(t, rec, tt.wantCode)
		})
	}
}

func TestConvertRange_MaxDaysBoundary(t *testing.T) {
	env := setupTest(t)
	env.cfg.MaxRangeDays = 3

	rec := env.do(t, http.MethodGet, "/api/v1/range?start=2017-09-01&end=2017-09-03", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/api/v1/range?start=2017-09-01&end=2017-09-04", nil, nil)
	assertStatus(t, rec, http.StatusBadRequest)
}

// =============================================================================
// HOLY DAYS
// =============================================================================

func TestHolyDays(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/holydays/2017?lang=en", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	var data struct {
		Year   int       `json:"year"`
		BEYear int       `json:"be_year"`
		Count  int       `json:"count"`
		Days   []HolyDay `json:"days"`
	}
	decodeResponse(t, rec, &data)

	if data.BEYear != 2560 {
		t.Errorf("be_year = %d, want 2560", data.BEYear)
	}
	if data.Count != 49 || len(data.Days) != 49 {
		t.Fatalf("count = %d (%d days), want 49", data.Count, len(data.Days))
	}
	first := data.Days[0]
	if first.Date != "2017-01-05" {
		t.Errorf("first date = %q, want 2017-01-05", first.Date)
	}
	if first.Title != "Holy day: waxing 8, month 2" {
		t.Errorf("first title = %q", first.Title)
	}
	if !first.Reading.HolyDay {
		t.Error("first reading HolyDay = false, want true")
	}
}

func TestHolyDays_PartialYear(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/holydays/1940", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	var data struct {
		Count int       `json:"count"`
		Days  []HolyDay `json:"days"`
	}
	decodeResponse(t, rec, &data)

	if data.Count != 37 {
		t.Fatalf("count = %d, want 37", data.Count)
	}
	if data.Days[0].Date != "1940-04-07" {
		t.Errorf("first date = %q, want 1940-04-07", data.Days[0].Date)
	}
}

func TestHolyDays_Feed(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/holydays/2017.ics", nil, nil)
	assertStatus(t, rec, http.StatusOK)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q, want text/calendar", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "holydays-2017.ics") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR") {
		t.Errorf("body does not start with BEGIN:VCALENDAR: %q", body[:min(len(body), 40)])
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 49 {
		t.Errorf("events = %d, want 49", n)
	}
}

func TestHolyDays_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/api/v1/holydays/abc", http.StatusBadRequest},
		{"/api/v1/holydays/abc.ics", http.StatusBadRequest},
		{"/api/v1/holydays/2200", http.StatusUnprocessableEntity},
		{"/api/v1/holydays/2200.ics", http.StatusUnprocessableEntity},
		{"/api/v1/holydays/2078", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil, nil)
			assertStatus(t, rec, tt.wantCode)
		})
	}
}

// =============================================================================
// BIRTH RECORDS
// =============================================================================

func TestBirths_Lifecycle(t *testing.T) {
	env := setupTest(t)

	body := CreateBirthRequest{Name: "Somchai", Date: "2017-09-01", Time: "12:00"}

	rec := env.do(t, http.MethodPost, "/api/v1/births", body, authHeader())
	assertStatus(t, rec, http.StatusCreated)

	var created BirthResponse
	decodeResponse(t, rec, &created)
	if created.Record == nil || created.Record.ID == 0 {
		t.Fatalf("created record = %+v, want an ID", created.Record)
	}
	if created.Record.Summary != "วันศุกร์ ขึ้น 11 ค่ำ เดือน 10 ปี ระกา จ.ศ.1379" {
		t.Errorf("Summary = %q", created.Record.Summary)
	}
	if created.Record.Zodiac != "rooster" {
		t.Errorf("Zodiac = %q, want rooster", created.Record.Zodiac)
	}

	// Same person and moment again
	rec = env.do(t, http.MethodPost, "/api/v1/births", body, authHeader())
	assertStatus(t, rec, http.StatusConflict)

	rec = env.do(t, http.MethodGet, "/api/v1/births", nil, authHeader())
	assertStatus(t, rec, http.StatusOK)
	var list struct {
		Records []database.BirthRecord `json:"records"`
		Total   int                    `json:"total"`
	}
	decodeResponse(t, rec, &list)
	if list.Total != 1 || len(list.Records) != 1 {
		t.Errorf("list total = %d (%d records), want 1", list.Total, len(list.Records))
	}

	path := "/api/v1/births/" + strconv.FormatInt(created.Record.ID, 10)

	rec = env.do(t, http.MethodGet, path+"?lang=en", nil, authHeader())
	assertStatus(t, rec, http.StatusOK)
	var got BirthResponse
	decodeResponse(t, rec, &got)
	if got.Reading.Zodiac != "Rooster" {
		t.Errorf("Reading.Zodiac = %q, want Rooster", got.Reading.Zodiac)
	}

	rec = env.do(t, http.MethodDelete, path, nil, authHeader())
	assertStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, path, nil, authHeader())
	assertStatus(t, rec, http.StatusNotFound)

	rec = env.do(t, http.MethodDelete, path, nil, authHeader())
	assertStatus(t, rec, http.StatusNotFound)
}

func TestBirths_Validation(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name     string
		body     any
		wantCode int
	}{
		{"missing name", CreateBirthRequest{Date: "2017-09-01"}, http.StatusBadRequest},
		{"bad date", CreateBirthRequest{Name: "a", Date: "1/9/2017"}, http.StatusBadRequest},
		{"bad time", CreateBirthRequest{Name: "a", Date: "2017-09-01", Time: "noon"}, http.StatusBadRequest},
		{"unknown field", map[string]string{"name": "a", "date": "2017-09-01", "place": "Bangkok"}, http.StatusBadRequest},
		{"out of range", CreateBirthRequest{Name: "a", Date: "1700-01-01"}, http.StatusUnprocessableEntity},
		{"no time means noon", CreateBirthRequest{Name: "a", Date: "1987-01-15"}, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/births", tt.body, authHeader())
			assertStatus(t, rec, tt.wantCode)
		})
	}
}

func TestBirths_InvalidID(t *testing.T) {
	env := setupTest(t)

	for _, id := range []string{"abc", "0", "-3"} {
		rec := env.do(t, http.MethodGet, "/api/v1/births/"+id, nil, authHeader())
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET births/%s status = %d, want 400", id, rec.Code)
		}
	}
}

func TestBirths_RequireAPIKey(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"missing key", nil},
		{"wrong key", map[string]string{"X-API-Key": "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/births", nil, tt.headers)
			assertStatus(t, rec, http.StatusUnauthorized)
		})
	}
}

func TestBirths_OpenInDevelopmentWithoutKey(t *testing.T) {
	env := setupTest(t)
	env.cfg.APIKey = ""

	rec := env.do(t, http.MethodGet, "/api/v1/births", nil, nil)
	assertStatus(t, rec, http.StatusOK)
}

// =============================================================================
// ROUTING
// =============================================================================

func TestRequestID(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", rec.Header().Get(RequestIDHeader), err)
	}

	incoming := uuid.NewString()
	rec = env.do(t, http.MethodGet, "/health", nil, map[string]string{RequestIDHeader: incoming})
	if got := rec.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("X-Request-ID = %q, want incoming %q", got, incoming)
	}

	rec = env.do(t, http.MethodGet, "/health", nil, map[string]string{RequestIDHeader: "not-a-uuid"})
	if got := rec.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("malformed X-Request-ID was echoed back")
	}
}

func TestNotFoundRoute(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/nowhere", nil, nil)
	assertStatus(t, rec, http.StatusNotFound)

	resp := decodeResponse(t, rec, nil)
	if resp.Error == nil || resp.Error.Code != CodeNotFound {
		t.Errorf("Error = %+v, want NOT_FOUND", resp.Error)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodOptions, "/api/v1/convert/2017-09-01", nil, nil)
	assertStatus(t, rec, http.StatusNoContent)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}
