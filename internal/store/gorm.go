package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"bootfeed/internal/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UpsertProduct(ctx context.Context, p *models.Product) (bool, error) {
	var existing models.Product
	err := s.db.WithContext(ctx).First(&existing, "id = ?", p.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost a create race: another writer got there first,
				// degrade to an update.
				return false, s.retryProductUpdate(ctx, p)
			}
			return false, fmt.Errorf("create product: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("find product: %w", err)
	}
	mergeProduct(&existing, p)
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	*p = existing
	return false, nil
}

func (s *GormStore) retryProductUpdate(ctx context.Context, p *models.Product) error {
	var existing models.Product
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", p.ID).Error; err != nil {
		return fmt.Errorf("refetch product after conflict: %w", err)
	}
	mergeProduct(&existing, p)
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("update product after conflict: %w", err)
	}
	*p = existing
	return nil
}

func (s *GormStore) UpsertVariant(ctx context.Context, v *models.Variant) (bool, error) {
	var existing models.Variant
	err := s.db.WithContext(ctx).First(&existing, "id = ?", v.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
			if isUniqueViolation(err) {
				return false, s.retryVariantUpdate(ctx, v)
			}
			return false, fmt.Errorf("create variant: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("find variant: %w", err)
	}
	mergeVariant(&existing, v)
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return false, fmt.Errorf("update variant: %w", err)
	}
	*v = existing
	return false, nil
}

func (s *GormStore) retryVariantUpdate(ctx context.Context, v *models.Variant) error {
	var existing models.Variant
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", v.ID).Error; err != nil {
		return fmt.Errorf("refetch variant after conflict: %w", err)
	}
	mergeVariant(&existing, v)
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("update variant after conflict: %w", err)
	}
	*v = existing
	return nil
}

func (s *GormStore) UpsertOffer(ctx context.Context, o *models.Offer) (bool, error) {
	var existing models.Offer
	err := s.db.WithContext(ctx).First(&existing, "id = ?", o.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
			if isUniqueViolation(err) {
				return false, s.retryOfferUpdate(ctx, o)
			}
			return false, fmt.Errorf("create offer: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("find offer: %w", err)
	}
	mergeOffer(&existing, o)
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return false, fmt.Errorf("update offer: %w", err)
	}
	*o = existing
	return false, nil
}

func (s *GormStore) retryOfferUpdate(ctx context.Context, o *models.Offer) error {
	var existing models.Offer
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", o.ID).Error; err != nil {
		return fmt.Errorf("refetch offer after conflict: %w", err)
	}
	mergeOffer(&existing, o)
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("update offer after conflict: %w", err)
	}
	*o = existing
	return nil
}

func (s *GormStore) Product(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

func (s *GormStore) VariantsByProduct(ctx context.Context, productID string) ([]models.Variant, error) {
	var variants []models.Variant
	if err := s.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	return variants, nil
}

func (s *GormStore) OffersByVariant(ctx context.Context, variantID string) ([]models.Offer, error) {
	var offers []models.Offer
	if err := s.db.WithContext(ctx).Where("variant_id = ?", variantID).Order("id").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return offers, nil
}

func (s *GormStore) ReplaceVariantSizes(ctx context.Context, variantID string, sizes []string) error {
	err := s.db.WithContext(ctx).Model(&models.Variant{}).
		Where("id = ?", variantID).
		Update("sizes", sizes).Error
	if err != nil {
		return fmt.Errorf("replace variant sizes: %w", err)
	}
	return nil
}

func (s *GormStore) SaveRollup(ctx context.Context, p *models.Product) error {
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"price_min":     p.PriceMin,
			"price_max":     p.PriceMax,
			"has_stock":     p.HasStock,
			"best_offer_id": p.BestOfferID,
			"merchants":     p.Merchants,
			"aggregated_at": p.AggregatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("save rollup: %w", err)
	}
	return nil
}

// isUniqueViolation covers postgres (lib/pq 23505) and the sqlite driver used
// in development.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
