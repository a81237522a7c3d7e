// Package handler provides type-safe HTTP request handling for the JSON API.
//
// The package centers around generic handler functions that bind HTTP requests
// to Go structs and return typed responses. This eliminates manual request
// parsing and response encoding while keeping each route explicit:
//
//	type CommentRequest struct {
//		FileID  string `json:"fileId" validate:"required"`
//		Message string `json:"message" validate:"required,max=2000"`
//	}
//
//	func comment(ctx handler.Context, req CommentRequest) handler.Response {
//		file, err := gw.SetDescription(ctx, req.FileID, req.Message)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(map[string]any{"file": file})
//	}
//
//	v := handler.NewValidator()
//	r.Post("/comment", handler.Wrap(comment,
//		handler.WithBinders[handler.Context, CommentRequest](binder.JSON(), handler.Validate(v)),
//	))
//
// # Architecture
//
//  1. HandlerFunc - generic function type that accepts typed requests and returns responses
//  2. Response - common interface for all response types (JSON, empty, stream)
//  3. Context - request context with access to the request and response writer
//  4. Decorators - middleware-like wrappers for gates and other cross-cutting concerns
//  5. Error handlers - turn binding and rendering errors into JSON error bodies
//
// # Response Types
//
//	handler.JSON(data)                          // 200 OK, {"data": ...}
//	handler.Body(data)                          // 200 OK, data as the whole document
//	handler.JSON(data, handler.WithJSONStatus(201))
//	handler.JSONError(err)                      // {"error": {"code", "message", "details"}}
//	handler.Empty()                             // 204 No Content
//	handler.Stream(body, handler.WithContentType("application/pdf"))
//
// # Errors
//
// JSONError maps errors to status codes: ValidationError becomes 400 with
// per-field details, HTTPError carries its own code, binder failures become 400
// (413 for oversized bodies) and anything else is a 500 whose message is passed
// through.
package handler
