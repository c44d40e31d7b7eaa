package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/errors"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/infrastructures"
)

// ProductService exposes the storefront catalog. The catalog is read-only
// for shoppers; products are managed through the admin surface.
type ProductService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	auditService *AuditService
}

func NewProductService(db *gorm.DB, validator *infrastructures.Validator, auditService *AuditService) *ProductService {
	return &ProductService{
		db:           db,
		validator:    validator,
		auditService: auditService,
	}
}

func (s *ProductService) CreateProduct(req *models.ProductCreateRequest) (*models.Product, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.Price.IsNegative() {
		return nil, errors.NewBadRequestError("Price must not be negative")
	}

	product := &models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		Stock:       req.Stock,
		Options:     req.Options,
	}
	if product.Options == "" {
		product.Options = "{}"
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create product")
	}

	s.auditService.LogAudit("products", product.ID, models.AuditActionCreate, nil, product, nil)

	return product, nil
}

func (s *ProductService) GetProduct(productID string) (*models.Product, error) {
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid product ID format")
	}

	var product models.Product
	err = s.db.Where("id = ?", productUUID).First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Product not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get product")
	}

	return &product, nil
}

// ListProducts returns the catalog, optionally narrowed to one category.
func (s *ProductService) ListProducts(category *models.ProductCategory) ([]models.Product, error) {
	query := s.db.Order("created_at ASC")
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get products")
	}

	return products, nil
}
