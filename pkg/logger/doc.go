// Package logger builds *slog.Logger values with functional options and
// context-aware attribute injection.
//
// New picks a JSON or text handler, applies static attributes and wraps the
// result in a handler that runs every registered ContextExtractor on each
// record. This is how request-scoped values such as the request id reach
// log lines without being passed around.
//
// # Usage
//
//	import "github.com/dmitrymomot/drivecase/pkg/logger"
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "drivecase"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "case tree created",
//		logger.CaseID(rootID),
//		logger.Duration(time.Since(start)),
//	)
//
// # Attributes
//
// attr.go holds helpers that keep key names consistent: CaseID, FolderID,
// FileID, DocType, Role, RequestID, Component, Operation and Duration.
// Identifier helpers return an empty Attr for an empty value, and Error and
// Errors skip nil errors, so they can be passed unconditionally:
//
//	log.Warn("upload failed", logger.Error(err), logger.FolderID(folderID))
package logger
