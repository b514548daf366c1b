// Package importer orchestrates a feed import run: map each row, infer
// missing attributes, upsert product -> variant -> offer, then aggregate the
// products the run actually touched.
package importer

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sort"

	"bootfeed/internal/aggregate"
	"bootfeed/internal/catalog/extract"
	"bootfeed/internal/events"
	"bootfeed/internal/feed"
	"bootfeed/internal/feed/sprinter"
	"bootfeed/internal/logger"
	"bootfeed/internal/store"
)

type Options struct {
	BatchSize int
	Limit     int
	Offset    int
	LogEvery  int
	DryRun    bool
}

type Stats struct {
	RowsTotal   int  `json:"rows_total"`
	RowsRead    int  `json:"rows_read"`
	RowsSkipped int  `json:"rows_skipped"`
	RowsMapped  int  `json:"rows_mapped"`
	Products    int  `json:"products"`
	Variants    int  `json:"variants"`
	Offers      int  `json:"offers"`
	Errors      int  `json:"errors"`
	DryRun      bool `json:"dry_run"`
}

// RowMapper is the feed-specific mapping step; sprinter.Mapper is the one
// production implementation.
type RowMapper interface {
	Map(row feed.Row) (*sprinter.Mapped, error)
}

type Pipeline struct {
	mapper RowMapper
	store  store.CatalogStore
	agg    *aggregate.Aggregator
	events *events.Publisher
	log    *logger.Logger
}

func New(mapper RowMapper, st store.CatalogStore, agg *aggregate.Aggregator, pub *events.Publisher, log *logger.Logger) *Pipeline {
	return &Pipeline{mapper: mapper, store: st, agg: agg, events: pub, log: log}
}

// Run consumes rows until the source is exhausted or the limit is reached.
// A single row's failure is counted and logged, never aborts the run; only an
// unreadable source does.
func (p *Pipeline) Run(ctx context.Context, rows feed.RowSource, opts Options) (*Stats, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.LogEvery <= 0 {
		opts.LogEvery = 500
	}

	stats := &Stats{DryRun: opts.DryRun}
	touched := map[string]struct{}{}

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.RowsTotal++
		if stats.RowsTotal <= opts.Offset {
			continue
		}
		if opts.Limit > 0 && stats.RowsRead >= opts.Limit {
			break
		}
		stats.RowsRead++

		p.processRow(ctx, row, opts, stats, touched)

		if stats.RowsRead%opts.LogEvery == 0 {
			p.log.Info("import progress: read=%d mapped=%d skipped=%d errors=%d",
				stats.RowsRead, stats.RowsMapped, stats.RowsSkipped, stats.Errors)
		}
		if stats.RowsRead%opts.BatchSize == 0 {
			// Bounds peak memory on very large feeds; batch boundaries carry
			// no transactional meaning.
			runtime.GC()
		}
	}

	if !opts.DryRun {
		p.aggregateTouched(ctx, touched, stats)
		p.events.Publish(ctx, events.Event{
			Type: events.TypeImportFinished,
			Data: map[string]interface{}{
				"rows_read":   stats.RowsRead,
				"rows_mapped": stats.RowsMapped,
				"products":    stats.Products,
				"variants":    stats.Variants,
				"offers":      stats.Offers,
				"errors":      stats.Errors,
			},
		})
	}

	return stats, nil
}

func (p *Pipeline) processRow(ctx context.Context, row feed.Row, opts Options, stats *Stats, touched map[string]struct{}) {
	mapped, err := p.mapper.Map(row)
	if err != nil {
		if errors.Is(err, sprinter.ErrSkip) {
			stats.RowsSkipped++
			return
		}
		stats.Errors++
		p.log.Error("map row %d: %v", stats.RowsTotal, err)
		return
	}

	mapped.ApplyInference(extract.Infer(mapped.Product.RawName, mapped.Product.Description))
	stats.RowsMapped++

	if opts.DryRun {
		return
	}

	created, err := p.store.UpsertProduct(ctx, &mapped.Product)
	if err != nil {
		// Variant and offer depend on the parent ID; skip the rest of the row.
		stats.Errors++
		p.log.Error("upsert product %s: %v", mapped.Product.ID, err)
		return
	}
	if created {
		stats.Products++
	}
	touched[mapped.Product.ID] = struct{}{}

	created, err = p.store.UpsertVariant(ctx, &mapped.Variant)
	if err != nil {
		stats.Errors++
		p.log.Error("upsert variant %s: %v", mapped.Variant.ID, err)
		return
	}
	if created {
		stats.Variants++
	}

	created, err = p.store.UpsertOffer(ctx, &mapped.Offer)
	if err != nil {
		stats.Errors++
		p.log.Error("upsert offer %s: %v", mapped.Offer.ID, err)
		return
	}
	if created {
		stats.Offers++
	}
}

// aggregateTouched recomputes rollups only for products this run touched, so
// repeated partial imports stay cheap.
func (p *Pipeline) aggregateTouched(ctx context.Context, touched map[string]struct{}, stats *Stats) {
	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := p.agg.AggregateProduct(ctx, id); err != nil {
			stats.Errors++
			p.log.Error("aggregate product %s: %v", id, err)
			continue
		}
		p.events.Publish(ctx, events.Event{Type: events.TypeProductTouched, ProductID: id})
	}
	p.log.Info("aggregated %d products", len(ids))
}
