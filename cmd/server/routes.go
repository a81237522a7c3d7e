package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/drivecase/handler"
	"github.com/dmitrymomot/drivecase/modules/casefolders"
	portalmod "github.com/dmitrymomot/drivecase/modules/portal"
	registrymod "github.com/dmitrymomot/drivecase/modules/registry"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/httpserver"
	"github.com/dmitrymomot/drivecase/pkg/origin"
	"github.com/dmitrymomot/drivecase/pkg/requestid"
	"github.com/dmitrymomot/drivecase/svc/casetree"
	"github.com/dmitrymomot/drivecase/svc/containment"
	"github.com/dmitrymomot/drivecase/svc/portal"
	"github.com/dmitrymomot/drivecase/svc/registry"
	"github.com/dmitrymomot/drivecase/svc/transfer"
)

// newRouter wires the services over gw and mounts every module. cases may
// be nil when no database is configured.
func newRouter(
	cfg Config,
	log *slog.Logger,
	gw drive.Gateway,
	cases *registry.Service,
	metrics *prometheus.Registry,
	checks ...httpserver.Check,
) (http.Handler, error) {
	tokens, err := portal.New(cfg.Portal, portal.WithLogger(log))
	if err != nil {
		return nil, err
	}
	tree := casetree.New(gw, casetree.WithLabels(cfg.Labels), casetree.WithLogger(log))
	files := transfer.New(gw,
		transfer.WithListLimit(cfg.Files.ListLimit),
		transfer.WithMaxFileBytes(cfg.Files.FileMaxBytes),
		transfer.WithLogger(log),
	)
	checker := containment.New(gw, containment.WithLogger(log))
	v := handler.NewValidator()

	requests := promauto.With(metrics).NewCounterVec(prometheus.CounterOpts{
		Name: "drivecase_http_requests_total",
		Help: "Total number of HTTP requests by status code and method",
	}, []string{"code", "method"})

	allowed := origin.Parse(cfg.CORSAllowedOrigins)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.RealIP,
		middleware.Recoverer,
		func(next http.Handler) http.Handler {
			return promhttp.InstrumentHandlerCounter(requests, next)
		},
		cors.Handler(cors.Options{
			AllowOriginFunc: func(_ *http.Request, o string) bool { return allowed.Allowed(o) },
			AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:  []string{"Authorization", "Content-Type", requestid.Header},
			ExposedHeaders:  []string{"Content-Disposition", "Content-Length", "ETag", requestid.Header},
			MaxAge:          300,
		}),
	)

	r.Get("/", handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Body(map[string]string{"service": cfg.AppName, "status": "ok"})
	}))
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, cfg.ReadinessTimeout, checks...))
	r.Handle("/metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))

	r.Mount("/api", registrymod.New(cases,
		registrymod.WithValidator(v),
		registrymod.WithLogger(log),
	).Handle())
	r.Mount("/portal", portalmod.New(tokens, tree, files,
		portalmod.WithUploadMaxBytes(cfg.Files.UploadMaxBytes),
		portalmod.WithValidator(v),
		portalmod.WithLogger(log),
	).Handle())
	r.Mount("/", casefolders.New(cfg.Files, tree, files, tokens, checker,
		casefolders.WithValidator(v),
		casefolders.WithLogger(log),
	).Handle())

	return r, nil
}
