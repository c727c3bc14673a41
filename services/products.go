package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
)

// ProductInput is what the admin form submits. Vendors and categories
// arrive as ids and are resolved to {id, name} snapshots at save time;
// later renames of the source records never touch saved products.
type ProductInput struct {
	Name          string      `json:"name" validate:"required"`
	Description   string      `json:"description"`
	Price         float64     `json:"price" validate:"required,gt=0"`
	DiscountPrice float64     `json:"discount_price" validate:"gte=0"`
	Unit          string      `json:"unit"`
	Stock         int         `json:"stock" validate:"gte=0"`
	Images        []string    `json:"images"`
	IsActive      *bool       `json:"is_active"`
	VendorIDs     []uuid.UUID `json:"vendor_ids" validate:"required,min=1"`
	CategoryIDs   []uuid.UUID `json:"category_ids" validate:"required,min=1"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID uuid.UUID
	VendorID   uuid.UUID
	Search     string
	Page       int
	Limit      int
}

type ProductService interface {
	List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, in ProductInput) (*models.Product, *ServiceError)
	Update(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, *ServiceError)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	vendors    repository.VendorRepo
	logger     *zap.Logger
}

func NewProductService(products repository.ProductRepo, categories repository.CategoryRepo, vendors repository.VendorRepo, logger *zap.Logger) ProductService {
	return &productService{products: products, categories: categories, vendors: vendors, logger: logger}
}

func (s *productService) List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	filter := map[string]interface{}{}
	if f.CategoryID != uuid.Nil {
		filter["categories.id"] = f.CategoryID
	}
	if f.VendorID != uuid.Nil {
		filter["vendors.id"] = f.VendorID
	}
	if f.Search != "" {
		filter["name"] = map[string]interface{}{"$regex": f.Search, "$options": "i"}
	}

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Page < 1 {
		f.Page = 1
	}
	skip := (f.Page - 1) * f.Limit

	products, err := s.products.Find(ctx, filter, f.Limit, skip)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*models.Product, *ServiceError) {
	vendors, categories, svcErr := s.resolveSnapshots(ctx, in)
	if svcErr != nil {
		return nil, svcErr
	}
	if in.DiscountPrice > 0 && in.DiscountPrice >= in.Price {
		return nil, NewServiceError(http.StatusBadRequest, "discount price must be below the original price")
	}

	now := time.Now().UTC()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	product := &models.Product{
		ID:            uuid.New(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Unit:          in.Unit,
		Stock:         in.Stock,
		Images:        in.Images,
		IsActive:      active,
		Vendors:       vendors,
		Categories:    categories,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "failed to create product")
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, *ServiceError) {
	vendors, categories, svcErr := s.resolveSnapshots(ctx, in)
	if svcErr != nil {
		return nil, svcErr
	}
	if in.DiscountPrice > 0 && in.DiscountPrice >= in.Price {
		return nil, NewServiceError(http.StatusBadRequest, "discount price must be below the original price")
	}

	updates := map[string]interface{}{
		"name":           in.Name,
		"description":    in.Description,
		"price":          in.Price,
		"discount_price": in.DiscountPrice,
		"unit":           in.Unit,
		"stock":          in.Stock,
		"vendors":        vendors,
		"categories":     categories,
	}
	if in.Images != nil {
		updates["images"] = in.Images
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	if err := s.products.Update(ctx, id, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewServiceError(http.StatusNotFound, "product not found")
		}
		s.logger.Error("failed to update product", zap.String("id", id.String()), zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "failed to update product")
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, NewServiceError(http.StatusInternalServerError, "failed to reload product")
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

// resolveSnapshots turns vendor/category ids into embedded {id, name}
// snapshots, rejecting ids that do not resolve.
func (s *productService) resolveSnapshots(ctx context.Context, in ProductInput) ([]models.Reference, []models.Reference, *ServiceError) {
	if len(in.VendorIDs) == 0 {
		return nil, nil, NewServiceError(http.StatusBadRequest, "at least one vendor is required")
	}
	if len(in.CategoryIDs) == 0 {
		return nil, nil, NewServiceError(http.StatusBadRequest, "at least one category is required")
	}

	vendors := make([]models.Reference, 0, len(in.VendorIDs))
	for _, id := range in.VendorIDs {
		vendor, err := s.vendors.FindByID(ctx, id)
		if err != nil {
			return nil, nil, NewServiceError(http.StatusBadRequest, "vendor "+id.String()+" not found")
		}
		vendors = append(vendors, vendor.Ref())
	}

	categories := make([]models.Reference, 0, len(in.CategoryIDs))
	for _, id := range in.CategoryIDs {
		category, err := s.categories.FindByID(ctx, id)
		if err != nil {
			return nil, nil, NewServiceError(http.StatusBadRequest, "category "+id.String()+" not found")
		}
		categories = append(categories, category.Ref())
	}

	return vendors, categories, nil
}
