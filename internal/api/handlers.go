package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zapponejosh/thai-calendar-api/internal/calendar"
	"github.com/zapponejosh/thai-calendar-api/internal/config"
	"github.com/zapponejosh/thai-calendar-api/internal/database"
	"github.com/zapponejosh/thai-calendar-api/internal/feed"
	"github.com/zapponejosh/thai-calendar-api/internal/locale"
	"github.com/zapponejosh/thai-calendar-api/internal/logger"
)

// Pagination bounds for the birth record listing.
const (
	defaultPageSize = 50
	maxPageSize     = 200
)

const icsSuffix = ".ics"

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db      *database.DB
	tr      *locale.Translator
	feed    *feed.Generator
	metrics *Metrics
	cfg     *config.Config
	clock   feed.Clock
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, tr *locale.Translator, metrics *Metrics, cfg *config.Config) *Handlers {
	return &Handlers{
		db:      db,
		tr:      tr,
		feed:    feed.NewGenerator(tr),
		metrics: metrics,
		cfg:     cfg,
		clock:   feed.RealClock{},
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		logger.Warn(ctx, "health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnhealthy)
		return
	}

	stats := h.db.Stats()
	h.metrics.RecordDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount, stats.WaitDuration)

	WriteSuccess(w, map[string]any{
		"status":    "healthy",
		"languages": h.tr.Languages(),
		"supported": map[string]int{
			"first_year": calendar.FirstSupportedYear - calendar.BEOffset,
			"last_year":  calendar.LastSupportedYear - calendar.BEOffset,
		},
	})
}

// ConvertDate handles GET /api/v1/convert/{date}?time=HH:MM&lang=th|en
func (h *Handlers) ConvertDate(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	dateStr := chi.URLParam(r, "date")
	td, err := calendar.Convert(dateStr, r.URL.Query().Get("time"))
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}
	h.metrics.conversion("ok")

	WriteSuccess(w, h.tr.Describe(td, lang))
}

// ConvertToday handles GET /api/v1/convert/today, using the current time in Thailand.
func (h *Handlers) ConvertToday(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	td, err := calendar.New(calendar.FromTime(h.clock.Now().In(calendar.ICT)))
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}
	h.metrics.conversion("ok")

	WriteSuccess(w, h.tr.Describe(td, lang))
}

// ConvertRange handles GET /api/v1/range?start=YYYY-MM-DD&end=YYYY-MM-DD&time=HH:MM
func (h *Handlers) ConvertRange(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	startStr, endStr := q.Get("start"), q.Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	clock := q.Get("time")
	start, err := calendar.ParseCivilDateTime(startStr, clock)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}
	end, err := calendar.ParseCivilDateTime(endStr, clock)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}

	days := int(end.Time().Sub(start.Time()).Hours()/24) + 1
	if days < 1 {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}
	if days > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	dates, err := calendar.Span(start.Time(), end.Time(), start.Hour, start.Minute)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}

	readings := make([]locale.Reading, 0, len(dates))
	for _, td := range dates {
		readings = append(readings, h.tr.Describe(td, lang))
	}
	h.metrics.Conversions.WithLabelValues("ok").Add(float64(len(dates)))

	WriteSuccess(w, map[string]any{
		"start":    startStr,
		"end":      endStr,
		"count":    len(readings),
		"readings": readings,
	})
}

// HolyDay is one observance day in a holy day listing.
type HolyDay struct {
	Date    string         `json:"date"`
	Title   string         `json:"title"`
	Reading locale.Reading `json:"reading"`
}

// HolyDays handles GET /api/v1/holydays/{year} and /api/v1/holydays/{year}.ics
func (h *Handlers) HolyDays(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	yearStr, asFeed := strings.CutSuffix(chi.URLParam(r, "year"), icsSuffix)
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", yearStr))
		return
	}

	if asFeed {
		h.holyDayFeed(w, r, year, lang)
		return
	}

	days, err := calendar.HolyDays(year)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}

	out := make([]HolyDay, 0, len(days))
	for _, td := range days {
		out = append(out, HolyDay{
			Date:    td.Civil().Time().Format(calendar.DateLayout),
			Title:   h.tr.HolyDayTitle(td, lang),
			Reading: h.tr.Describe(td, lang),
		})
	}

	WriteSuccess(w, map[string]any{
		"year":    year,
		"be_year": year + calendar.BEOffset,
		"count":   len(out),
		"days":    out,
	})
}

func (h *Handlers) holyDayFeed(w http.ResponseWriter, r *http.Request, year int, lang string) {
	body, err := h.feed.HolyDays(year, lang)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", feed.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="holydays-%d.ics"`, year))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.Error(r.Context(), "failed to write feed", err)
	}
}

// =============================================================================
// Birth records
// =============================================================================

// CreateBirthRequest is the body of POST /api/v1/births.
type CreateBirthRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"omitempty,datetime=15:04"`
}

// BirthResponse pairs a saved record with its reading in the requested language.
type BirthResponse struct {
	Record  *database.BirthRecord `json:"record"`
	Reading locale.Reading        `json:"reading"`
}

var validate = validator.New()

// CreateBirth handles POST /api/v1/births
func (h *Handlers) CreateBirth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	var req CreateBirthRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return
	}

	td, err := calendar.Convert(req.Date, req.Time)
	if err != nil {
		h.writeConversionError(w, r, err)
		return
	}
	h.metrics.conversion("ok")

	civil := td.Civil().Time()
	rec := &database.BirthRecord{
		Name:      req.Name,
		BirthDate: civil.Format(calendar.DateLayout),
		BirthTime: civil.Format(calendar.TimeLayout),
		Summary:   td.Summary(),
		Zodiac:    td.Zodiac().Key(),
		MinorEra:  td.MinorEra(),
	}

	if err := h.db.CreateBirthRecord(ctx, rec); err != nil {
		if database.IsDuplicate(err) {
			WriteError(w, http.StatusConflict, "Birth record already saved", CodeDuplicate)
			return
		}
		logger.Error(ctx, "failed to create birth record", err)
		WriteInternalError(w, "Failed to save birth record")
		return
	}

	WriteCreated(w, BirthResponse{Record: rec, Reading: h.tr.Describe(td, lang)})
}

// ListBirths handles GET /api/v1/births?limit=&offset=
func (h *Handlers) ListBirths(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultPageSize
	offset := 0

	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= maxPageSize {
		limit = l
	}
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o >= 0 {
		offset = o
	}

	records, err := h.db.ListBirthRecords(ctx, limit, offset)
	if err != nil {
		logger.Error(ctx, "failed to list birth records", err)
		WriteInternalError(w, "Failed to retrieve birth records")
		return
	}

	total, err := h.db.CountBirthRecords(ctx)
	if err != nil {
		logger.Error(ctx, "failed to count birth records", err)
		WriteInternalError(w, "Failed to retrieve birth records")
		return
	}

	WriteSuccess(w, map[string]any{
		"records": records,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetBirth handles GET /api/v1/births/{id}
func (h *Handlers) GetBirth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang, ok := h.language(w, r)
	if !ok {
		return
	}

	id, ok := birthID(w, r)
	if !ok {
		return
	}
	ctx = logger.WithAttrs(ctx, slog.Int64("birth_id", id))

	rec, err := h.db.GetBirthRecord(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Birth record not found")
			return
		}
		logger.Error(ctx, "failed to get birth record", err)
		WriteInternalError(w, "Failed to retrieve birth record")
		return
	}

	td, err := calendar.Convert(rec.BirthDate, rec.BirthTime)
	if err != nil {
		// Stored records were converted on save; failing now means the row was edited.
		logger.Error(ctx, "stored birth record no longer converts", err)
		WriteInternalError(w, "Failed to convert birth record")
		return
	}

	WriteSuccess(w, BirthResponse{Record: rec, Reading: h.tr.Describe(td, lang)})
}

// DeleteBirth handles DELETE /api/v1/births/{id}
func (h *Handlers) DeleteBirth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := birthID(w, r)
	if !ok {
		return
	}
	ctx = logger.WithAttrs(ctx, slog.Int64("birth_id", id))

	if err := h.db.DeleteBirthRecord(ctx, id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Birth record not found")
			return
		}
		logger.Error(ctx, "failed to delete birth record", err)
		WriteInternalError(w, "Failed to delete birth record")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Birth record deleted"})
}

// =============================================================================
// Helpers
// =============================================================================

// language resolves ?lang= first, then Accept-Language, then the configured
// default. An explicit unsupported ?lang= is rejected.
func (h *Handlers) language(w http.ResponseWriter, r *http.Request) (string, bool) {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if !h.tr.Supports(lang) {
			WriteBadRequest(w, fmt.Sprintf("Unsupported language: %s. Use one of: %s",
				lang, strings.Join(h.tr.Languages(), ", ")))
			return "", false
		}
		return lang, true
	}
	return h.tr.Match(r.Header.Get("Accept-Language")), true
}

// writeConversionError maps calendar errors to 400 and 422, anything else to 500.
func (h *Handlers) writeConversionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case calendar.IsInvalid(err):
		h.metrics.conversion("invalid")
		WriteBadRequest(w, err.Error())
	case calendar.IsUnconvertible(err):
		h.metrics.conversion("unconvertible")
		logger.Debug(r.Context(), "date cannot be converted", slog.Any("error", err))
		WriteUnprocessable(w, err.Error())
	default:
		logger.Error(r.Context(), "conversion failed", err)
		WriteInternalError(w, "Failed to convert date")
	}
}

func birthID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid birth record ID")
		return 0, false
	}
	return id, true
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "Invalid request: " + strings.Join(msgs, "; ")
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
