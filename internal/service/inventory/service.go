// Package inventory serves snapshots of the product inventory kept in
// a Google spreadsheet, falling back to fixture data when the sheet is
// unreachable.
package inventory

import (
	"context"

	model "github.com/centralaluminiosdelvalle/backend/internal/model/inventory"
)

// Source produces inventory snapshots. Implementations fail closed and
// always return a usable snapshot.
type Source interface {
	FetchInventory(ctx context.Context) model.Snapshot
}

// Service is the read surface used by the inventory page and the chat
// assistant. It holds no state between calls; every read builds a
// brand-new snapshot.
type Service struct {
	source Source
}

// NewService wires the presentation service to a data source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// GetInventoryData returns the current snapshot.
func (s *Service) GetInventoryData(ctx context.Context) model.Snapshot {
	return s.source.FetchInventory(ctx)
}

// RefreshInventory re-fetches unconditionally. There is no memoization
// or debouncing; two back-to-back calls perform two fetches.
func (s *Service) RefreshInventory(ctx context.Context) model.Snapshot {
	return s.source.FetchInventory(ctx)
}
