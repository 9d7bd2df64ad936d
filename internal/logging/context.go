package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Field keys shared by every child logger.
const (
	FieldComponent  = "component"
	FieldTabID      = "tab_id"
	FieldDownloadID = "download_id"
)

// FromContext returns the logger stored in ctx, or a disabled one.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags subsequent log lines with the emitting component.
func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, FieldComponent, component)
}

// WithTabID tags subsequent log lines with the tab being acted on.
func WithTabID(ctx context.Context, id string) context.Context {
	return withField(ctx, FieldTabID, id)
}

// WithDownloadID tags subsequent log lines with a download record.
func WithDownloadID(ctx context.Context, id string) context.Context {
	return withField(ctx, FieldDownloadID, id)
}

func withField(ctx context.Context, key, value string) context.Context {
	child := FromContext(ctx).With().Str(key, value).Logger()
	return WithContext(ctx, child)
}
