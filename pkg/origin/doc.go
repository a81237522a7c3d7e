// Package origin matches browser Origin header values against an allow list
// with single-label wildcards.
//
// Entries are hosts or origins, optionally with a scheme and a port. A "*"
// label matches exactly one DNS label, so "*.example.com" allows
// "https://app.example.com" but neither "https://example.com" nor
// "https://a.b.example.com". A bare "*" allows every origin. An entry without
// a scheme accepts both http and https; an entry without a port accepts any
// port.
//
// The matcher plugs into go-chi/cors:
//
//	m := origin.Parse(cfg.AllowedOrigins)
//	r.Use(cors.Handler(cors.Options{
//		AllowOriginFunc: func(_ *http.Request, o string) bool { return m.Allowed(o) },
//	}))
package origin
