package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/config"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/observability"
	"github.com/matzehuels/barchart/pkg/pipeline"
	"github.com/matzehuels/barchart/pkg/render/sink"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
	pngCacheSize    = 64
)

// serveCommand creates the preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve [file...]",
		Short: "Serve a live chart over HTTP",
		Long: `Serve keeps one chart in memory and exposes it over HTTP. Transitions
advance with wall-clock time, so polling /chart.svg shows them play.

Routes:
  GET  /chart.svg          current frame as SVG
  GET  /chart.png          current frame as PNG
  GET  /scene.json         current frame as JSON
  GET  /state              sort, extremum and animation status
  POST /sort               click: advance the sort cycle
  PUT  /sort?by_name=&ascending=
  POST /resize?width=&height=
  POST /colors?neg=&pos=
  POST /next               switch to the next dataset argument
  POST /dispatch?event=&id=
  GET  /metrics            Prometheus metrics`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args, configPath, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, inputs []string, configPath, addr string) error {
	logger := loggerFromContext(ctx)
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	datasets := make([][]dataset.Raw, len(inputs))
	for i, in := range inputs {
		if datasets[i], err = pipeline.Load(in, nil); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	newPromHooks(reg).install()
	defer observability.Reset()

	ps, err := newPreviewServer(datasets, cfg, logger, time.Now)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           ps.routes(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		ReadHeaderTimeout: 5 * time.Second,
	}

	printInfo("Serving %s on %s", inputs[0], StyleLink.Render("http://localhost"+addr+"/chart.svg"))
	printKeyValue("datasets", fmt.Sprint(len(datasets)))
	printKeyValue("metrics", StyleLink.Render("http://localhost"+addr+"/metrics"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}

// =============================================================================
// previewServer - HTTP access to one chart
// =============================================================================

// previewServer serializes access to a chart, which is not safe for
// concurrent use.
type previewServer struct {
	mu       sync.Mutex
	chart    *chart.Chart
	datasets [][]dataset.Raw
	current  int
	cfg      config.Config
	logger   *log.Logger
	now      func() time.Time
	last     time.Time
	pngs     *lru.Cache[frameKey, []byte]
}

// frameKey identifies a rasterized frame by the hash of its SVG.
type frameKey struct {
	sum   uint64
	scale float64
}

func newPreviewServer(datasets [][]dataset.Raw, cfg config.Config, logger *log.Logger, now func() time.Time) (*previewServer, error) {
	c := chart.New(chart.WithLogger(logger))
	if err := c.Initialize(datasets[0], cfg); err != nil {
		return nil, err
	}
	pngs, err := lru.New[frameKey, []byte](pngCacheSize)
	if err != nil {
		return nil, err
	}
	st, _ := c.State()
	return &previewServer{
		chart:    c,
		datasets: datasets,
		cfg:      st.Config,
		logger:   logger,
		now:      now,
		last:     now(),
		pngs:     pngs,
	}, nil
}

func (s *previewServer) routes(metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(observeRequests)

	r.Get("/chart.svg", s.handleSVG)
	r.Get("/chart.png", s.handlePNG)
	r.Get("/scene.json", s.handleScene)
	r.Get("/state", s.handleState)
	r.Post("/sort", s.handleCycle)
	r.Put("/sort", s.handleSort)
	r.Post("/resize", s.handleResize)
	r.Post("/colors", s.handleColors)
	r.Post("/next", s.handleNext)
	r.Post("/dispatch", s.handleDispatch)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	return r
}

// observeRequests reports every request to the HTTP hooks.
func observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, time.Since(start))
	})
}

// locked advances the chart to the current time and runs fn under the lock.
func (s *previewServer) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.chart.Advance(now.Sub(s.last))
	s.last = now
	return fn()
}

// =============================================================================
// Frame Handlers
// =============================================================================

func (s *previewServer) handleSVG(w http.ResponseWriter, r *http.Request) {
	var data []byte
	_ = s.locked(func() error {
		data = sink.RenderSVG(s.chart.Snapshot(), sink.WithTitles(s.cfg.KeyTooltipLabel, s.cfg.ValueTooltipLabel))
		return nil
	})
	writeFrame(w, r, "image/svg+xml", fmt.Sprintf(`"%016x"`, xxhash.Sum64(data)), data)
}

func (s *previewServer) handlePNG(w http.ResponseWriter, r *http.Request) {
	scale := 1.0
	if v := r.URL.Query().Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid scale %q", v))
			return
		}
		scale = f
	}
	if err := sink.ValidateScale(scale); err != nil {
		writeChartError(w, err)
		return
	}
	var (
		data []byte
		key  frameKey
	)
	err := s.locked(func() error {
		snap := s.chart.Snapshot()
		key = frameKey{sum: xxhash.Sum64(sink.RenderSVG(snap)), scale: scale}
		if cached, ok := s.pngs.Get(key); ok {
			data = cached
			return nil
		}
		var err error
		if data, err = sink.RenderPNG(snap, sink.WithScale(scale)); err != nil {
			return err
		}
		s.pngs.Add(key, data)
		return nil
	})
	if err != nil {
		writeChartError(w, err)
		return
	}
	writeFrame(w, r, "image/png", fmt.Sprintf(`"%016x-%g"`, key.sum, key.scale), data)
}

// writeFrame writes an image with its ETag, or 304 when the client already
// holds that frame.
func writeFrame(w http.ResponseWriter, r *http.Request, contentType, etag string, data []byte) {
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func (s *previewServer) handleScene(w http.ResponseWriter, r *http.Request) {
	var data []byte
	err := s.locked(func() error {
		st, _ := s.chart.State()
		var err error
		data, err = sink.RenderJSON(s.chart.Snapshot(),
			sink.WithJSONSort(st.Sort.String()),
			sink.WithJSONDataMax(st.Dataset.DataMax))
		return err
	})
	if err != nil {
		writeChartError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// =============================================================================
// State Handlers
// =============================================================================

type stateResponse struct {
	Dataset   int            `json:"dataset"`
	Records   int            `json:"records"`
	Sort      string         `json:"sort"`
	DataMax   float64        `json:"data_max"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Animating bool           `json:"animating"`
	Remaining int64          `json:"remaining_ms"`
	Tooltip   *chart.Tooltip `json:"tooltip,omitempty"`
	Labels    []string       `json:"labels"`
}

// state must be called with the lock held.
func (s *previewServer) state() stateResponse {
	st, _ := s.chart.State()
	resp := stateResponse{
		Dataset:   s.current,
		Records:   st.Dataset.Len(),
		Sort:      st.Sort.String(),
		DataMax:   st.Dataset.DataMax,
		Width:     st.Container.Width,
		Height:    st.Container.Height,
		Animating: s.chart.Animating(),
		Remaining: s.chart.Remaining().Milliseconds(),
		Labels:    st.Dataset.Labels,
	}
	if tip := s.chart.Tooltip(); tip.Visible {
		resp.Tooltip = &tip
	}
	return resp
}

func (s *previewServer) handleState(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() error { return nil })
}

func (s *previewServer) handleCycle(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() error {
		_, err := s.chart.CycleSort()
		return err
	})
}

func (s *previewServer) handleSort(w http.ResponseWriter, r *http.Request) {
	byName, err := queryBool(r, "by_name")
	if err != nil {
		writeChartError(w, err)
		return
	}
	ascending, err := queryBool(r, "ascending")
	if err != nil {
		writeChartError(w, err)
		return
	}
	s.respond(w, func() error { return s.chart.UpdateSort(byName, ascending) })
}

func (s *previewServer) handleResize(w http.ResponseWriter, r *http.Request) {
	width, err := queryFloat(r, "width")
	if err != nil {
		writeChartError(w, err)
		return
	}
	height, err := queryFloat(r, "height")
	if err != nil {
		writeChartError(w, err)
		return
	}
	s.respond(w, func() error { return s.chart.Resize(width, height) })
}

func (s *previewServer) handleColors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.respond(w, func() error { return s.chart.UpdateColors(q.Get("neg"), q.Get("pos")) })
}

func (s *previewServer) handleNext(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() error {
		s.current = (s.current + 1) % len(s.datasets)
		return s.chart.UpdateData(s.datasets[s.current])
	})
}

func (s *previewServer) handleDispatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.respond(w, func() error { return s.chart.Dispatch(chart.Event(q.Get("event")), q.Get("id")) })
}

// respond runs fn under the lock and writes the resulting state.
func (s *previewServer) respond(w http.ResponseWriter, fn func() error) {
	var resp stateResponse
	err := s.locked(func() error {
		if err := fn(); err != nil {
			return err
		}
		resp = s.state()
		return nil
	})
	if err != nil {
		writeChartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func queryBool(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", name)
	}
	return &b, nil
}

// queryFloat parses a numeric parameter; a missing parameter is zero.
func queryFloat(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", name)
	}
	return f, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidValue, errors.ErrCodeDuplicateKey,
		errors.ErrCodeInvalidSize, errors.ErrCodeInvalidColor, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNotInitialized:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeChartError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
