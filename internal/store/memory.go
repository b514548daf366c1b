package store

import (
	"context"
	"sort"

	"bootfeed/internal/models"
)

// Memory is a map-backed CatalogStore used by tests and dry development runs.
// Not safe for concurrent writers, same as the import pipeline itself.
type Memory struct {
	Products map[string]*models.Product
	Variants map[string]*models.Variant
	Offers   map[string]*models.Offer
}

func NewMemory() *Memory {
	return &Memory{
		Products: map[string]*models.Product{},
		Variants: map[string]*models.Variant{},
		Offers:   map[string]*models.Offer{},
	}
}

func (m *Memory) UpsertProduct(_ context.Context, p *models.Product) (bool, error) {
	if existing, ok := m.Products[p.ID]; ok {
		mergeProduct(existing, p)
		*p = *existing
		return false, nil
	}
	cp := *p
	m.Products[p.ID] = &cp
	return true, nil
}

func (m *Memory) UpsertVariant(_ context.Context, v *models.Variant) (bool, error) {
	if existing, ok := m.Variants[v.ID]; ok {
		mergeVariant(existing, v)
		*v = *existing
		return false, nil
	}
	cp := *v
	m.Variants[v.ID] = &cp
	return true, nil
}

func (m *Memory) UpsertOffer(_ context.Context, o *models.Offer) (bool, error) {
	if existing, ok := m.Offers[o.ID]; ok {
		mergeOffer(existing, o)
		*o = *existing
		return false, nil
	}
	cp := *o
	m.Offers[o.ID] = &cp
	return true, nil
}

func (m *Memory) Product(_ context.Context, id string) (*models.Product, error) {
	if p, ok := m.Products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *Memory) VariantsByProduct(_ context.Context, productID string) ([]models.Variant, error) {
	var out []models.Variant
	for _, v := range m.Variants {
		if v.ProductID == productID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) OffersByVariant(_ context.Context, variantID string) ([]models.Offer, error) {
	var out []models.Offer
	for _, o := range m.Offers {
		if o.VariantID == variantID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ReplaceVariantSizes(_ context.Context, variantID string, sizes []string) error {
	if v, ok := m.Variants[variantID]; ok {
		v.Sizes = sizes
	}
	return nil
}

func (m *Memory) SaveRollup(_ context.Context, p *models.Product) error {
	if existing, ok := m.Products[p.ID]; ok {
		existing.PriceMin = p.PriceMin
		existing.PriceMax = p.PriceMax
		existing.HasStock = p.HasStock
		existing.BestOfferID = p.BestOfferID
		existing.Merchants = p.Merchants
		existing.AggregatedAt = p.AggregatedAt
	}
	return nil
}
