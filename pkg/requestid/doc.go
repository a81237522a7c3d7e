// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a client supplied X-Request-ID header when it is at most
// 128 characters of [a-zA-Z0-9_-]; otherwise it generates a UUIDv4. The id is
// echoed in the response header and stored in the request context, where
// FromContext reads it back. LoggerExtractor plugs the id into the logger
// package so log records written with the request context carry it:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
