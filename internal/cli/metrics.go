package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/observability"
)

const metricsNamespace = "barchart"

// promHooks records chart, render and HTTP events as Prometheus metrics.
type promHooks struct {
	elements *prometheus.CounterVec
	sorts    *prometheus.CounterVec
	resizes  prometheus.Counter
	width    prometheus.Gauge
	height   prometheus.Gauge
	failures *prometheus.CounterVec
	renders  *prometheus.HistogramVec
	requests *prometheus.HistogramVec
}

var (
	_ observability.ChartHooks  = (*promHooks)(nil)
	_ observability.RenderHooks = (*promHooks)(nil)
	_ observability.HTTPHooks   = (*promHooks)(nil)
)

// newPromHooks creates the collectors and registers them with reg.
func newPromHooks(reg prometheus.Registerer) *promHooks {
	f := promauto.With(reg)
	return &promHooks{
		elements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reconciled_elements_total",
			Help:      "Bars reconciled, by operation and phase.",
		}, []string{"op", "phase"}),
		sorts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sort_changes_total",
			Help:      "Sort state changes, by resulting state.",
		}, []string{"state"}),
		resizes: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "resizes_total",
			Help:      "Container resizes.",
		}),
		width: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "container_width_pixels",
			Help:      "Current container width.",
		}),
		height: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "container_height_pixels",
			Help:      "Current container height.",
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rejected_operations_total",
			Help:      "Rejected chart operations, by operation and error code.",
		}, []string{"op", "code"}),
		renders: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Snapshot render latency, by formats and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"formats", "outcome"}),
		requests: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Preview server request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// install registers h for every hook category.
func (h *promHooks) install() {
	observability.SetChartHooks(h)
	observability.SetRenderHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *promHooks) OnReconcile(op string, enter, update, exit int) {
	h.elements.WithLabelValues(op, "enter").Add(float64(enter))
	h.elements.WithLabelValues(op, "update").Add(float64(update))
	h.elements.WithLabelValues(op, "exit").Add(float64(exit))
}

func (h *promHooks) OnSort(state string) {
	h.sorts.WithLabelValues(state).Inc()
}

func (h *promHooks) OnResize(width, height float64) {
	h.resizes.Inc()
	h.width.Set(width)
	h.height.Set(height)
}

func (h *promHooks) OnError(op string, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = "UNKNOWN"
	}
	h.failures.WithLabelValues(op, code).Inc()
}

func (h *promHooks) OnRenderStart(context.Context, []string) {}

func (h *promHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	h.renders.WithLabelValues(strings.Join(formats, ","), outcome).Observe(d.Seconds())
}

func (h *promHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
