package models

import "context"

type runContextKey struct{}

// RunContext identifies one invocation of a batch job in logs
type RunContext struct {
	RunId string // uuid generated at process start
	Job   string // "importer", "scraper", ...
}

// WithRunContext attaches run identification to a context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// GetRunContext retrieves run identification from context, or nil if absent.
func GetRunContext(ctx context.Context) *RunContext {
	rc, _ := ctx.Value(runContextKey{}).(*RunContext)
	return rc
}
