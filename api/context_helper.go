package api

import (
	"context"
	"time"
)

// QueryTimeout bounds a single case-store query. Bulk actions issue one query
// per member so the per-query bound has to stay well under the request
// timeout.
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with the query timeout applied
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
