// Package httpserver runs an http.Handler with configurable timeouts,
// lifecycle hooks and graceful shutdown.
//
// Run blocks until its context is cancelled, SIGINT or SIGTERM is received,
// or Shutdown is called, then drains in-flight requests within the shutdown
// timeout. Start hooks run before the listener opens and may abort startup;
// stop hooks run after shutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStartHook(func(ctx context.Context) error { return pg.Migrate(ctx, pool, cfg.PG, log) }),
//		httpserver.WithStopHook(func(context.Context) { pool.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler back the /healthz and /readyz probes.
package httpserver
