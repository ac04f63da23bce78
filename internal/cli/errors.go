package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors, each declaring its code in the "cli" catalog domain
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging with context
//   - Debug mode management for error output

import (
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"errcatalog/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

// Domain is the catalog domain of the CLI error codes.
const Domain = "cli"

var errs = errx.NewSet(Domain)

// errorSpecs maps sentinel errors to their descriptors.
// Populated by newSentinelError during variable initialization.
var errorSpecs = make(map[error]errx.Descriptor)

// Errors returns the set holding the CLI error codes.
func Errors() *errx.Set {
	return errs
}

// newSentinelError creates a sentinel error and declares its descriptor in
// one step. The descriptor's site is the sentinel declaration.
func newSentinelError(msg, code, variant string, status int, message string) error {
	err := errors.New(msg)
	desc := errx.NewDescriptor(Domain, code, variant, message,
		errx.WithStatus(status), errx.WithTags("cli"))
	errorSpecs[err] = errs.Register(desc, 1)
	return err
}

// lookupSpec provides a lookup function for errx.FromSentinel.
func lookupSpec(sentinel error) (errx.Descriptor, bool) {
	desc, ok := errorSpecs[sentinel]
	return desc, ok
}

// newWithSentinel creates a new error for the sentinel's descriptor.
// The message becomes the error reason.
func newWithSentinel(base error, msg string) error {
	if base == nil {
		return errx.Internal(msg)
	}
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

// wrapWithSentinel wraps a cause error with the sentinel's descriptor.
func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.WrapInternal(msg, cause)
	}
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context.
// This is useful for adding debugging information like file paths or ConfigMap names.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
var (
	ErrCatalogBuildFailed = newSentinelError("catalog build failed",
		"CATALOG_BUILD_FAILED", "CatalogBuildFailed", http.StatusInternalServerError,
		"The error catalog could not be built")
	ErrEntryNotFound = newSentinelError("catalog entry not found",
		"CATALOG_ENTRY_NOT_FOUND", "CatalogEntryNotFound", http.StatusNotFound,
		"No error code {domain}/{code} in the catalog")
	ErrInvalidArguments = newSentinelError("invalid arguments",
		"INVALID_ARGUMENTS", "InvalidArguments", http.StatusBadRequest,
		"Invalid command arguments")
	ErrExportFailed = newSentinelError("export failed",
		"EXPORT_FAILED", "ExportFailed", http.StatusInternalServerError,
		"Couldn't export the catalog")
	ErrWriteOutputFailed = newSentinelError("write output failed",
		"WRITE_OUTPUT_FAILED", "WriteOutputFailed", http.StatusInternalServerError,
		"Couldn't write {path}")
	ErrReadInputFailed = newSentinelError("read input failed",
		"READ_INPUT_FAILED", "ReadInputFailed", http.StatusBadRequest,
		"Couldn't read {path}")
	ErrCatalogsDiffer = newSentinelError("catalogs differ",
		"CATALOGS_DIFFER", "CatalogsDiffer", http.StatusConflict,
		"The catalogs differ")
	ErrKubeClientFailed = newSentinelError("kubernetes client unavailable",
		"KUBE_CLIENT_FAILED", "KubeClientFailed", http.StatusInternalServerError,
		"Couldn't create a Kubernetes client")
	ErrPublishFailed = newSentinelError("publish failed",
		"PUBLISH_FAILED", "PublishFailed", http.StatusBadGateway,
		"Couldn't publish the catalog to ConfigMap {namespace}/{name}")
	ErrLoadConfigFailed = newSentinelError("load config failed",
		"CONFIG_LOAD_FAILED", "ConfigLoadFailed", http.StatusBadRequest,
		"Couldn't load configuration")
)

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
//
// This extracts all context from errx.Error and logs it with structured fields:
// - error.code: "CATALOG_ENTRY_NOT_FOUND"
// - error.domain: "cli"
// - error.context.path: "catalog.json"
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	var errxErr *errx.Error
	if errors.As(err, &errxErr) {
		fields := []zap.Field{
			zap.String("error.code", errxErr.Code()),
			zap.String("error.domain", errxErr.Domain()),
			zap.String("error.message", errxErr.Message()),
			zap.Error(err),
		}
		if status := errxErr.Status(); status != 0 {
			fields = append(fields, zap.Int("error.status", status))
		}

		for key, value := range errxErr.Context() {
			fields = append(fields, zap.Any("error.context."+key, value))
		}

		// Distinct field name to avoid a duplicate "error" key.
		if cause := errxErr.Cause(); cause != nil {
			fields = append(fields, zap.NamedError("error.cause", cause))
		}

		logger.Error(msg, fields...)
	} else {
		logger.Error(msg, zap.Error(err))
	}
}
