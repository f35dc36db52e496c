package monthgrid

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/monthgrid/monthgrid/pkg/calendar"
)

var pageTemplate = mustParseTemplate("page.html", "document.html")

const maxRequestBodySize = 64 << 10

type application struct {
	Version   string
	CreatedAt time.Time
	Config    config

	calendar *calendar.Calendar
	// Calendars for languages other than the configured one, keyed by
	// language code. Built once, they are as immutable as calendar.
	calendarsByLanguage map[string]*calendar.Calendar
}

func newApplication(c *config) (*application, error) {
	app := &application{
		Version:             buildVersion,
		CreatedAt:           time.Now(),
		Config:              *c,
		calendarsByLanguage: make(map[string]*calendar.Calendar),
	}

	cal, err := calendar.New(&app.Config.Calendar)
	if err != nil {
		return nil, fmt.Errorf("creating calendar: %w", err)
	}
	app.calendar = cal

	for _, language := range calendar.Languages() {
		if language == cal.Language() {
			app.calendarsByLanguage[language] = cal
			continue
		}

		// Label overrides are written for the configured language, only the
		// first day of week carries over.
		localized, err := calendar.New(&calendar.Config{
			Language:       language,
			FirstDayOfWeek: app.Config.Calendar.FirstDayOfWeek,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %s calendar: %w", language, err)
		}

		app.calendarsByLanguage[language] = localized
	}

	app.Config.Server.BaseURL = strings.TrimRight(app.Config.Server.BaseURL, "/")

	return app, nil
}

// calendarForRequest honours an explicit ?lang= first. Accept-Language is
// only consulted when the config doesn't pin a language.
func (a *application) calendarForRequest(r *http.Request) *calendar.Calendar {
	if language := r.URL.Query().Get("lang"); language != "" {
		if cal, ok := a.calendarsByLanguage[language]; ok {
			return cal
		}

		return a.calendar
	}

	if a.Config.Calendar.Language != "" {
		return a.calendar
	}

	if language, ok := calendar.MatchLanguage(r.Header.Get("Accept-Language")); ok {
		return a.calendarsByLanguage[language]
	}

	return a.calendar
}

// renderParams come from the query string. t is in Unix milliseconds, the
// unit of every timestamp the API hands out.
type renderParams struct {
	months    int
	reference time.Time
}

func (a *application) parseRenderParams(query url.Values) (renderParams, error) {
	params := renderParams{months: a.Config.Months}

	if value := query.Get("months"); value != "" {
		months, err := strconv.Atoi(value)
		if err != nil || months < 1 || months > maxMonths {
			return params, fmt.Errorf("months must be an integer between 1 and %d", maxMonths)
		}
		params.months = months
	}

	if value := query.Get("t"); value != "" {
		milliseconds, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return params, errors.New("t must be a unix timestamp in milliseconds")
		}
		params.reference = time.UnixMilli(milliseconds)
	}

	return params, nil
}

type pageTemplateData struct {
	App      *application
	Calendar template.HTML
	Language string
	PrevURL  string
	NextURL  string
}

func (a *application) handlePageRequest(w http.ResponseWriter, r *http.Request) {
	params, err := a.parseRenderParams(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cal := a.calendarForRequest(r)
	result := cal.Render(params.months, params.reference)

	data := pageTemplateData{
		App:      a,
		Calendar: result.HTML,
		Language: cal.Language(),
		PrevURL:  a.pageURL(r.URL.Query(), result.Prev),
		NextURL:  a.pageURL(r.URL.Query(), result.Next),
	}

	var responseBytes bytes.Buffer
	if err := pageTemplate.Execute(&responseBytes, data); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(responseBytes.Bytes())
}

func (a *application) pageURL(query url.Values, anchor time.Time) string {
	values := url.Values{}
	for _, key := range []string{"months", "lang"} {
		if value := query.Get(key); value != "" {
			values.Set(key, value)
		}
	}
	values.Set("t", strconv.FormatInt(anchor.UnixMilli(), 10))

	return a.Config.Server.BaseURL + "/?" + values.Encode()
}

func (a *application) handleCalendarFragmentRequest(w http.ResponseWriter, r *http.Request) {
	params, err := a.parseRenderParams(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := a.calendarForRequest(r).Render(params.months, params.reference)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Prev-Timestamp", strconv.FormatInt(result.PrevTimestamp(), 10))
	w.Header().Set("X-Next-Timestamp", strconv.FormatInt(result.NextTimestamp(), 10))
	io.WriteString(w, string(result.HTML))
}

type calendarResponse struct {
	HTML          string `json:"html"`
	PrevTimestamp int64  `json:"prevTimestamp"`
	NextTimestamp int64  `json:"nextTimestamp"`
}

// handleCalendarRenderRequest renders with a configuration sent by the
// caller: {"config": {...}, "months": 3, "t": 1704067200000}. t is in
// milliseconds, matching the returned anchors.
func (a *application) handleCalendarRenderRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		http.Error(w, "reading request body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	if !gjson.ValidBytes(body) {
		http.Error(w, calendar.ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	request := gjson.ParseBytes(body)

	cal := a.calendar
	if raw := request.Get("config"); raw.Exists() {
		config, err := calendar.ParseConfigJSON([]byte(raw.Raw))
		if err == nil {
			cal, err = calendar.New(config)
		}

		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	months := a.Config.Months
	if value := request.Get("months"); value.Exists() {
		months = int(value.Int())
		if value.Type != gjson.Number || value.Num != float64(months) || months < 1 || months > maxMonths {
			http.Error(w, fmt.Sprintf("months must be an integer between 1 and %d", maxMonths), http.StatusBadRequest)
			return
		}
	}

	var reference time.Time
	if value := request.Get("t"); value.Exists() {
		if value.Type != gjson.Number {
			http.Error(w, "t must be a unix timestamp in milliseconds", http.StatusBadRequest)
			return
		}
		reference = time.UnixMilli(value.Int())
	}

	result := cal.Render(months, reference)

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(calendarResponse{
		HTML:          string(result.HTML),
		PrevTimestamp: result.PrevTimestamp(),
		NextTimestamp: result.NextTimestamp(),
	})
	if err != nil {
		slog.Error("Failed to write calendar response", "error", err)
	}
}

func (a *application) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.handlePageRequest)
	mux.HandleFunc("GET /api/calendar", a.handleCalendarFragmentRequest)
	mux.HandleFunc("POST /api/calendar", a.handleCalendarRenderRequest)
	mux.HandleFunc("GET /api/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func (a *application) server() (func() error, func() error) {
	server := http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:           a.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	start := func() error {
		slog.Info("Starting server",
			"host", a.Config.Server.Host,
			"port", a.Config.Server.Port,
			"base_url", a.Config.Server.BaseURL,
			"language", a.calendar.Language(),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}

	stop := func() error {
		return server.Close()
	}

	return start, stop
}
