package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldAlbumID is the standardized structured logging key for album identifiers.
	FieldAlbumID = "album_id"
	// FieldKeyword is the standardized structured logging key for keyword names.
	FieldKeyword = "keyword"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

type contextKey int

const (
	albumIDKey contextKey = iota
	correlationIDKey
)

// WithAlbumID stores an album identifier on the context.
func WithAlbumID(ctx context.Context, albumID string) context.Context {
	return context.WithValue(ctx, albumIDKey, albumID)
}

// WithCorrelationID stores a correlation identifier on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := ctx.Value(albumIDKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldAlbumID, id))
	}
	if id, ok := ctx.Value(correlationIDKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldCorrelationID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, attr := range fields {
		args = append(args, attr)
	}
	return logger.With(args...)
}
