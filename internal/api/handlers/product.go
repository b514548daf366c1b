package handlers

import (
	"net/http"
	"strconv"

	"bootfeed/internal/logger"
	"bootfeed/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewProductHandler(db *gorm.DB, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		db:     db,
		logger: logger,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	var products []models.Product

	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	// Filters
	brand := c.Query("brand")
	search := c.Query("search")
	inStock := c.Query("in_stock")

	query := h.db.Model(&models.Product{})

	if brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if search != "" {
		query = query.Where("model LIKE ? OR raw_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if inStock == "true" {
		query = query.Where("has_stock = ?", true)
	}

	var total int64
	query.Count(&total)

	if err := query.Order("brand, model").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *ProductHandler) Variants(c *gin.Context) {
	id := c.Param("id")

	var variants []models.Variant
	if err := h.db.Where("product_id = ?", id).Order("id").Find(&variants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": variants})
}

func (h *ProductHandler) Offers(c *gin.Context) {
	id := c.Param("id")

	var offers []models.Offer
	err := h.db.
		Joins("JOIN variants ON variants.id = offers.variant_id").
		Where("variants.product_id = ?", id).
		Order("offers.price").
		Find(&offers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": offers})
}
