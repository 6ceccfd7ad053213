package feed

import (
	"context"
)

// DefaultPageSize is the window used for full-collection reads.
const DefaultPageSize = 1000

// Window returns one page of rows: at most limit rows starting at
// offset, in a stable order. The store backs this with a query ordered
// by (created_at DESC, id ASC); the id tiebreak keeps page boundaries
// deterministic when many rows share a timestamp.
type Window[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// FetchAll drains a windowed read into one in-memory slice.
//
// It requests successive half-open ranges [offset, offset+pageSize)
// until a page comes back shorter than pageSize. A page error aborts
// the whole fetch: callers never see a partial collection. The result
// preserves the backend's sort order across page boundaries and is a
// fresh slice on every call.
func FetchAll[T any](ctx context.Context, window Window[T], pageSize int) ([]T, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	all := []T{}
	for offset := 0; ; offset += pageSize {
		page, err := window(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}
