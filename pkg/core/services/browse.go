package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/core/query"
	"github.com/jakechorley/connect-care/pkg/db"
)

// BrowseOptions controls how a list page loads and narrows a collection
type BrowseOptions struct {
	Kind     model.Kind
	Sort     string // e.g. "-created_date"; empty keeps store order
	Limit    int    // passed to the store; negative means no limit
	Criteria query.Criteria
	GroupBy  string // optional field to aggregate the filtered records by
}

// BrowseResult is everything a list page shows
type BrowseResult[T any] struct {
	Records  []T
	Total    int            // records loaded before filtering
	Tabs     []query.Tab    // status tab counts over the loaded records
	Groups   []query.Bucket // aggregate of the filtered records, when GroupBy is set
	Criteria query.Criteria
}

// Browse loads a collection and applies the list page's filters to it
func Browse[T model.Filterable](
	ctx context.Context,
	store db.Lister[T],
	logger *zap.Logger,
	opts BrowseOptions,
) (*BrowseResult[T], error) {
	logger.Debug("Starting browse",
		zap.String("kind", string(opts.Kind)),
		zap.String("sort", opts.Sort),
		zap.Int("limit", opts.Limit),
		zap.Stringer("criteria", opts.Criteria))

	records, err := store.List(ctx, opts.Sort, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", opts.Kind, err)
	}

	filtered := query.Filter(records, opts.Criteria)
	result := &BrowseResult[T]{
		Records:  filtered,
		Total:    len(records),
		Tabs:     query.TabCounts(records, query.StatusTabs(opts.Kind)),
		Criteria: opts.Criteria,
	}
	if opts.GroupBy != "" {
		result.Groups = query.Sorted(query.Aggregate(filtered, opts.GroupBy))
	}

	logger.Debug("Browse complete", zap.Int("total", result.Total), zap.Int("matched", len(filtered)))
	return result, nil
}
