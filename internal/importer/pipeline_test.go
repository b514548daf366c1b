package importer

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootfeed/internal/aggregate"
	"bootfeed/internal/catalog/tables"
	"bootfeed/internal/feed"
	"bootfeed/internal/feed/sprinter"
	"bootfeed/internal/logger"
	"bootfeed/internal/store"
)

type sliceSource struct {
	rows []feed.Row
	i    int
}

func (s *sliceSource) Next() (feed.Row, error) {
	if s.i >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.i]
	s.i++
	return row, nil
}

func testPipeline(t *testing.T) (*Pipeline, *store.Memory) {
	t.Helper()
	tbls := tables.Load(filepath.Join("..", "..", "configs"), nil)
	require.NotEmpty(t, tbls.Brands)
	log := logger.New("error")
	mem := store.NewMemory()
	return New(sprinter.NewMapper(tbls), mem, aggregate.New(mem, log), nil, log), mem
}

func phantomRow(size, price string) feed.Row {
	return feed.Row{
		"brand":         "Nike",
		"title":         "Nike Phantom GT Negro Talla " + size,
		"color":         "Negro",
		"size":          size,
		"price":         price,
		"availability":  "in stock",
		"merchant_name": "Sprinter",
		"url":           "https://example.test/phantom",
		"image":         "https://example.test/phantom.jpg",
	}
}

func TestRunImportsAndAggregates(t *testing.T) {
	p, mem := testPipeline(t)

	stats, err := p.Run(context.Background(), &sliceSource{rows: []feed.Row{
		phantomRow("42", "89.99"),
		phantomRow("43", "94.99"),
	}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.RowsRead)
	assert.Equal(t, 2, stats.RowsMapped)
	assert.Equal(t, 1, stats.Products)
	assert.Equal(t, 1, stats.Variants)
	assert.Equal(t, 2, stats.Offers)
	assert.Equal(t, 0, stats.Errors)

	require.Len(t, mem.Products, 1)
	for _, product := range mem.Products {
		assert.True(t, product.HasStock)
		assert.Equal(t, 89.99, product.PriceMin)
		assert.Equal(t, 94.99, product.PriceMax)
		assert.NotEmpty(t, product.BestOfferID)
		assert.Equal(t, []string{"Sprinter"}, product.Merchants)
		assert.NotNil(t, product.AggregatedAt)
	}
	for _, variant := range mem.Variants {
		assert.Equal(t, []string{"42", "43"}, variant.Sizes)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	p, mem := testPipeline(t)
	ctx := context.Background()

	_, err := p.Run(ctx, &sliceSource{rows: []feed.Row{phantomRow("42", "89.99")}}, Options{})
	require.NoError(t, err)

	// re-feeding the identical row produces zero new records
	stats, err := p.Run(ctx, &sliceSource{rows: []feed.Row{phantomRow("42", "89.99")}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Products)
	assert.Equal(t, 0, stats.Variants)
	assert.Equal(t, 0, stats.Offers)

	assert.Len(t, mem.Products, 1)
	assert.Len(t, mem.Variants, 1)
	assert.Len(t, mem.Offers, 1)
}

func TestRunSkipsBadRows(t *testing.T) {
	p, mem := testPipeline(t)

	bad := phantomRow("42", "89.99")
	bad["availability"] = "out of stock"

	stats, err := p.Run(context.Background(), &sliceSource{rows: []feed.Row{
		bad,
		phantomRow("42", "89.99"),
	}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.RowsSkipped)
	assert.Equal(t, 1, stats.RowsMapped)
	assert.Len(t, mem.Offers, 1)
}

func TestRunDryRun(t *testing.T) {
	p, mem := testPipeline(t)

	stats, err := p.Run(context.Background(), &sliceSource{rows: []feed.Row{
		phantomRow("42", "89.99"),
	}}, Options{DryRun: true})
	require.NoError(t, err)

	assert.True(t, stats.DryRun)
	assert.Equal(t, 1, stats.RowsMapped)
	assert.Empty(t, mem.Products)
	assert.Empty(t, mem.Variants)
	assert.Empty(t, mem.Offers)
}

func TestRunLimitAndOffset(t *testing.T) {
	p, _ := testPipeline(t)

	rows := []feed.Row{
		phantomRow("42", "89.99"),
		phantomRow("43", "89.99"),
		phantomRow("44", "89.99"),
	}

	stats, err := p.Run(context.Background(), &sliceSource{rows: rows}, Options{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RowsRead)
	assert.Equal(t, 1, stats.RowsMapped)
}
