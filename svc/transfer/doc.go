// Package transfer implements the file operations behind the upload, move,
// listing, comment and preview routes.
//
// Every file returned carries the view, preview and download links derived
// by drive.LinksFor. Uploads are stored as
//
//	[prefix_]<unix millis>_<sanitized original name>
//
// Preview enforces a size ceiling from the reported file size before the
// stream is handed to the caller. HTTPError translates the package and
// gateway errors into handler.HTTPError values for route handlers.
package transfer
