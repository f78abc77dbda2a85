package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/techradar/pkg/core/radar/chart"
	"github.com/matzehuels/techradar/pkg/core/render/radar/sink"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/radar"
)

// RequestTimeout bounds the work done for a single request.
const RequestTimeout = 30 * time.Second

// Server serves one radar dataset. Create it with New and load data with
// Refresh before serving.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
	ui     chart.Interactor

	charts map[string]*chart.Chart
	group  singleflight.Group

	mu       sync.RWMutex
	dataset  *radar.Dataset
	loadedAt time.Time
	lastErr  error
}

// Option configures a Server.
type Option func(*Server)

// WithTextRenderer sets how descriptions are turned into HTML.
func WithTextRenderer(r chart.TextRenderer) Option {
	return func(s *Server) { s.ui.Text = r }
}

// New creates a server that loads through runner with opts. opts.Source is
// required; layout defaults are applied.
func New(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger, options ...Option) (*Server, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	opts.Logger = logger

	s := &Server{
		runner: runner,
		opts:   opts,
		logger: logger,
		charts: make(map[string]*chart.Chart, len(pipeline.ValidStyles)),
	}
	for style := range pipeline.ValidStyles {
		o := opts
		o.Style = style
		s.charts[style] = chart.New(pipeline.ChartOptions(o)...)
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Refresh reloads the dataset from the source. Concurrent calls share one
// load. On failure the previous dataset stays in place.
func (s *Server) Refresh(ctx context.Context) (*radar.Dataset, error) {
	v, err, shared := s.group.Do("refresh", func() (any, error) {
		d, err := s.runner.Load(ctx, s.opts)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastErr = err
		if err != nil {
			s.logger.Warn("refresh failed, keeping previous dataset", "error", err)
			return nil, err
		}
		s.dataset = d
		s.loadedAt = time.Now()
		for _, c := range s.charts {
			if _, ok := c.Scene(); ok {
				c.SetData(d)
			} else {
				c.Redraw(chart.InputFrom(d, s.opts.Width, s.opts.Height))
			}
		}
		s.logger.Info("dataset loaded", "entries", len(d.Entries), "quadrants", len(d.Quadrants))
		return d, nil
	})
	if shared {
		s.logger.Debug("refresh shared with concurrent caller")
	}
	if err != nil {
		return nil, err
	}
	return v.(*radar.Dataset), nil
}

// Dataset returns the current dataset, or nil before the first successful load.
func (s *Server) Dataset() *radar.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.health)
	r.Get("/radar.svg", s.radarSVG)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scene", s.scene)
		r.Post("/refresh", s.refresh)
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", s.entries)
			r.Get("/{index}", s.entryDetail)
			r.Get("/{index}/tooltip", s.entryTooltip)
		})
	})
	return r
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status   string    `json:"status"`
	Entries  int       `json:"entries"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
	Error    string    `json:"last_error,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	resp := healthResponse{Status: "ok", LoadedAt: s.loadedAt}
	if s.dataset != nil {
		resp.Entries = len(s.dataset.Entries)
	}
	if s.lastErr != nil {
		resp.Error = errors.UserMessage(s.lastErr)
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) radarSVG(w http.ResponseWriter, r *http.Request) {
	d, err := s.requireDataset()
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	sc := pipeline.BuildScene(d, opts)
	opts.Formats = []string{pipeline.FormatSVG}
	out, err := pipeline.RenderScene(ctx, sc, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("ETag", etag(sc))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out[pipeline.FormatSVG])
}

func (s *Server) scene(w http.ResponseWriter, r *http.Request) {
	if _, err := s.requireDataset(); err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	c := s.charts[opts.Style]

	var sc chart.Scene
	q := r.URL.Query()
	if q.Has("width") || q.Has("height") {
		sc = c.Resize(opts.Width, opts.Height)
	} else {
		sc, _ = c.Scene()
	}

	tag := etag(sc)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	data, err := sink.RenderJSON(sc)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode scene"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", tag)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type entrySummary struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Quadrant string `json:"quadrant"`
	Ring     string `json:"ring"`
	IsNew    bool   `json:"is_new,omitempty"`
	Status   string `json:"status,omitempty"`
}

type entriesResponse struct {
	Title     string         `json:"title,omitempty"`
	Rings     []string       `json:"rings"`
	Quadrants []string       `json:"quadrants"`
	Entries   []entrySummary `json:"entries"`
}

func (s *Server) entries(w http.ResponseWriter, _ *http.Request) {
	d, err := s.requireDataset()
	if err != nil {
		writeError(w, err)
		return
	}
	resp := entriesResponse{
		Title:     d.Title,
		Rings:     d.Rings,
		Quadrants: d.Quadrants,
		Entries:   make([]entrySummary, len(d.Entries)),
	}
	for i, e := range d.Entries {
		resp.Entries[i] = entrySummary{
			Index:    i,
			Name:     e.Name,
			Quadrant: e.Quadrant,
			Ring:     e.Ring,
			IsNew:    bool(e.IsNew),
			Status:   e.Status,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) entryDetail(w http.ResponseWriter, r *http.Request) {
	e, err := s.entryFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.ui.Click(e))
}

func (s *Server) entryTooltip(w http.ResponseWriter, r *http.Request) {
	e, err := s.entryFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	var c chart.Cursor
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"cursorX", &c.X},
		{"cursorY", &c.Y},
		{"viewportHeight", &c.ViewportHeight},
	} {
		if *p.dst, err = floatParam(q.Get(p.name), 0); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.ui.Hover(e, c))
}

type refreshResponse struct {
	Entries int    `json:"entries"`
	SceneID string `json:"scene_id,omitempty"`
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), RequestTimeout)
	defer cancel()

	d, err := s.Refresh(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := refreshResponse{Entries: len(d.Entries)}
	if sc, ok := s.charts[s.opts.Style].Scene(); ok {
		resp.SceneID = sc.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) requireDataset() (*radar.Dataset, error) {
	if d := s.Dataset(); d != nil {
		return d, nil
	}
	return nil, errors.New(errors.ErrCodeSourceUnavailable, "no dataset loaded")
}

// requestOptions overlays width, height and style query parameters on the
// server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.opts
	q := r.URL.Query()

	var err error
	if opts.Width, err = floatParam(q.Get("width"), opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height"), opts.Height); err != nil {
		return opts, err
	}
	if err := errors.ValidateViewport(opts.Width, opts.Height); err != nil {
		return opts, err
	}
	if v := q.Get("style"); v != "" {
		if err := pipeline.ValidateStyle(v); err != nil {
			return opts, err
		}
		opts.Style = v
	}
	return opts, nil
}

func (s *Server) entryFromPath(r *http.Request) (radar.Entry, error) {
	d, err := s.requireDataset()
	if err != nil {
		return radar.Entry{}, err
	}
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return radar.Entry{}, errors.New(errors.ErrCodeInvalidInput, "invalid entry index %q", raw)
	}
	if i < 0 || i >= len(d.Entries) {
		return radar.Entry{}, errors.New(errors.ErrCodeNotFound, "entry %d not found", i)
	}
	return d.Entries[i], nil
}

func floatParam(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid number %q", raw)
	}
	return v, nil
}

func etag(sc chart.Scene) string {
	return `"` + sc.ID + `"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
