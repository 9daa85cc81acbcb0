package api

import (
	"context"
	"time"
)

// QueryTimeout bounds one data-source round trip. It has to outlast a slow
// feed response, which the feed client itself caps at 30 seconds.
const QueryTimeout = 35 * time.Second

// WithQueryTimeout creates a context with the data-source timeout applied
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
