// Package drive is the storage gateway: a narrow interface over the Google
// Drive v3 API with one method per provider call.
//
// GoogleGateway talks to Drive using service account credentials resolved
// through golang.org/x/oauth2/google. MemoryGateway keeps a tree in memory
// for tests and local runs. WithMetrics decorates either with Prometheus
// counters and latency histograms.
//
//	gw, err := drive.NewGoogleGateway(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	gateway := drive.WithMetrics(gw, drive.NewMetrics(prometheus.DefaultRegisterer))
//
//	folder, err := gateway.CreateFolder(ctx, "Case 42")
//
// Folder and file names pass through sanitizer.FolderName before they reach
// the provider. Provider 404s surface as ErrNotFound; every other provider
// error is returned wrapped with its original message. Nothing retries.
//
// LinksFor derives the view, preview and direct download URLs shown to
// clients from a file id and the provider's view link.
package drive
