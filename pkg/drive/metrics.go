package drive

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for gateway calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the gateway collectors with reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drivecase_drive_requests_total",
				Help: "Total number of storage provider calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drivecase_drive_request_duration_seconds",
				Help:    "Duration of storage provider calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	outcome := "success"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// WithMetrics wraps gw so every call is counted and timed.
func WithMetrics(gw Gateway, m *Metrics) Gateway {
	if m == nil {
		return gw
	}
	return &instrumented{next: gw, m: m}
}

type instrumented struct {
	next Gateway
	m    *Metrics
}

func (g *instrumented) CreateFolder(ctx context.Context, name string, parentIDs ...string) (item *Item, err error) {
	defer func(start time.Time) { g.m.observe("create_folder", start, err) }(time.Now())
	return g.next.CreateFolder(ctx, name, parentIDs...)
}

func (g *instrumented) CreateFile(ctx context.Context, name, parentID, mimeType string, content io.Reader) (item *Item, err error) {
	defer func(start time.Time) { g.m.observe("create_file", start, err) }(time.Now())
	return g.next.CreateFile(ctx, name, parentID, mimeType, content)
}

func (g *instrumented) Get(ctx context.Context, id string) (item *Item, err error) {
	defer func(start time.Time) { g.m.observe("get", start, err) }(time.Now())
	return g.next.Get(ctx, id)
}

func (g *instrumented) ListChildren(ctx context.Context, parentID string, opts ListOptions) (items []Item, err error) {
	defer func(start time.Time) { g.m.observe("list_children", start, err) }(time.Now())
	return g.next.ListChildren(ctx, parentID, opts)
}

func (g *instrumented) Reparent(ctx context.Context, fileID, addParentID string, removeParentIDs ...string) (item *Item, err error) {
	defer func(start time.Time) { g.m.observe("reparent", start, err) }(time.Now())
	return g.next.Reparent(ctx, fileID, addParentID, removeParentIDs...)
}

func (g *instrumented) SetDescription(ctx context.Context, fileID, description string) (item *Item, err error) {
	defer func(start time.Time) { g.m.observe("set_description", start, err) }(time.Now())
	return g.next.SetDescription(ctx, fileID, description)
}

func (g *instrumented) GrantPublicRead(ctx context.Context, fileID string) (err error) {
	defer func(start time.Time) { g.m.observe("grant_public_read", start, err) }(time.Now())
	return g.next.GrantPublicRead(ctx, fileID)
}

func (g *instrumented) Trash(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { g.m.observe("trash", start, err) }(time.Now())
	return g.next.Trash(ctx, id)
}

// Download is timed until the stream is opened, not until it is drained.
func (g *instrumented) Download(ctx context.Context, id string) (d *Download, err error) {
	defer func(start time.Time) { g.m.observe("download", start, err) }(time.Now())
	return g.next.Download(ctx, id)
}
