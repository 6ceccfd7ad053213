package feed

import (
	"context"
	"errors"
	"testing"
)

// pagedSource simulates the backend's offset-windowed read over a fixed
// row set, counting how many page requests were made.
type pagedSource struct {
	rows     []int
	requests int
}

func (s *pagedSource) window(_ context.Context, offset, limit int) ([]int, error) {
	s.requests++
	if offset >= len(s.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.rows) {
		end = len(s.rows)
	}
	return s.rows[offset:end], nil
}

func makeRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestFetchAllPartialLastPage(t *testing.T) {
	src := &pagedSource{rows: makeRows(2500)}

	all, err := FetchAll(context.Background(), src.window, 1000)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(all) != 2500 {
		t.Fatalf("expected 2500 rows, got %d", len(all))
	}
	if src.requests != 3 {
		t.Errorf("expected exactly 3 page requests (1000, 1000, 500), got %d", src.requests)
	}
	for i, v := range all {
		if v != i {
			t.Fatalf("order broken at index %d: got %d", i, v)
		}
	}
}

func TestFetchAllExactlyFullLastPage(t *testing.T) {
	src := &pagedSource{rows: makeRows(1000)}

	all, err := FetchAll(context.Background(), src.window, 1000)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(all) != 1000 {
		t.Fatalf("expected 1000 rows, got %d", len(all))
	}
	// A full first page cannot prove exhaustion; a second, empty request
	// must confirm it.
	if src.requests != 2 {
		t.Errorf("expected 2 page requests, got %d", src.requests)
	}
}

func TestFetchAllEmptySource(t *testing.T) {
	src := &pagedSource{}

	all, err := FetchAll(context.Background(), src.window, 1000)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no rows, got %d", len(all))
	}
	if src.requests != 1 {
		t.Errorf("expected 1 page request, got %d", src.requests)
	}
}

func TestFetchAllAbortsOnPageError(t *testing.T) {
	boom := errors.New("backend rejected the query")
	calls := 0
	window := func(_ context.Context, offset, limit int) ([]int, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return makeRows(limit), nil
	}

	all, err := FetchAll(context.Background(), window, 100)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the page error to propagate, got %v", err)
	}
	// No partial result on failure.
	if all != nil {
		t.Errorf("expected nil result on error, got %d rows", len(all))
	}
}
