package adapter

import (
	"context"

	"github.com/Cyclone1070/shellfs/internal/models"
)

// Page is one window of a listing.
type Page struct {
	Entries    []models.PathEntry
	TotalCount int
	Truncated  bool
}

// paginate returns items[offset:offset+limit] clamped to bounds. A limit
// of zero or less means no limit.
func paginate[T any](items []T, offset, limit int) ([]T, int, bool) {
	total := len(items)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return items[start:end], total, end < total
}

// LsPage is Ls restricted to a window of the listing.
func (s *ShellFileSystem) LsPage(ctx context.Context, path string, offset, limit int) (Page, error) {
	entries, err := s.Ls(ctx, path)
	if err != nil {
		return Page{}, err
	}
	window, total, truncated := paginate(entries, offset, limit)
	return Page{Entries: window, TotalCount: total, Truncated: truncated}, nil
}
