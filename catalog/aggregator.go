// Package catalog presents one unified search interface over the inventory
// store and the third-party feed. It holds no state and caches nothing: every
// call re-fetches and re-merges from scratch.
package catalog

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// Canonical source selectors
const (
	SourceDatabase = "database"
	SourceFeed     = "feed"
	SourceAll      = "all"
)

// VehicleSource is the contract both source adapters satisfy
type VehicleSource interface {
	Search(ctx context.Context, filter models.VehicleFilter, page, pageSize int) (*models.SearchResult, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
}

// Aggregator routes catalog reads to the canonical source, or merges both
// sources when configured with SourceAll
type Aggregator struct {
	inventory VehicleSource
	feed      VehicleSource
	source    string
}

// New builds the aggregator with explicit adapters; source selects the
// canonical one and defaults to the database
func New(inventory, feed VehicleSource, source string) *Aggregator {
	if source != SourceFeed && source != SourceAll {
		source = SourceDatabase
	}
	return &Aggregator{inventory: inventory, feed: feed, source: source}
}

// Search returns one filtered, sorted, paginated page over the configured
// source(s). Partition routing (luxury/standard/both) happens inside each
// adapter; the aggregator only decides which adapters participate.
func (a *Aggregator) Search(ctx context.Context, filter models.VehicleFilter, page, pageSize int) (*models.SearchResult, error) {
	switch a.source {
	case SourceFeed:
		return a.feed.Search(ctx, filter, page, pageSize)
	case SourceAll:
		return a.searchMerged(ctx, filter, page, pageSize)
	default:
		return a.inventory.Search(ctx, filter, page, pageSize)
	}
}

// searchMerged fans out to both sources and merges. The two identifier spaces
// (numeric feed ad-numbers vs slugs) should never collide, but that is a
// construction-time assumption, so duplicates from the feed are dropped with
// a warning instead of being trusted not to exist.
func (a *Aggregator) searchMerged(ctx context.Context, filter models.VehicleFilter, page, pageSize int) (*models.SearchResult, error) {
	// fetch-all-then-paginate: ask each source for everything that matches
	inv, err := a.inventory.Search(ctx, filter, 1, allRecordsCap)
	if err != nil {
		// the inventory store is the canonical half of the merge; its failure
		// aborts the call rather than degrading silently
		return nil, err
	}
	feedRes, err := a.feed.Search(ctx, filter, 1, allRecordsCap)
	if err != nil {
		zap.S().Errorw("feed source failed during merge, continuing with inventory only", "error", err)
		feedRes = &models.SearchResult{}
	}

	seen := make(map[string]struct{}, len(inv.Vehicles))
	merged := make([]models.Vehicle, 0, len(inv.Vehicles)+len(feedRes.Vehicles))
	for _, v := range inv.Vehicles {
		seen[v.ID] = struct{}{}
		merged = append(merged, v)
	}
	for _, v := range feedRes.Vehicles {
		if _, dup := seen[v.ID]; dup {
			zap.S().Warnw("dropping feed vehicle with colliding identifier", "id", v.ID)
			continue
		}
		merged = append(merged, v)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := &merged[i], &merged[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	result := models.Paginate(merged, filter, page, pageSize)
	return &result, nil
}

// GetVehicle resolves a detail lookup against the configured source(s)
func (a *Aggregator) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	switch a.source {
	case SourceFeed:
		return a.feed.GetByID(ctx, id)
	case SourceAll:
		if v, err := a.inventory.GetByID(ctx, id); err == nil {
			return v, nil
		}
		return a.feed.GetByID(ctx, id)
	default:
		return a.inventory.GetByID(ctx, id)
	}
}

// allRecordsCap bounds a fetch-everything page; inventory partitions are
// already capped well below this
const allRecordsCap = 2000
