// Package file inspects multipart uploads before they are forwarded to
// storage: content type detection, size checks and opening the part.
//
// Content sniffing uses github.com/gabriel-vasile/mimetype. MIMEType prefers a
// specific Content-Type sent by the client and falls back to sniffing when the
// client sent nothing useful:
//
//	mt, err := file.MIMEType(req.File)
//	if err := file.ValidateSize(req.File, cfg.FileMaxBytes); err != nil {
//		return handler.JSONError(handler.ErrRequestEntityTooLarge)
//	}
package file
