package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
)

// CategoryService and VendorService are straight document CRUD. Renaming
// a category or vendor deliberately leaves products that embedded the old
// name untouched.

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepo
}

func NewCategoryService(repo repository.CategoryRepo) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now
	return s.repo.Create(ctx, category)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return s.repo.Update(ctx, id, updates)
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type VendorService interface {
	List(ctx context.Context) ([]models.Vendor, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	Create(ctx context.Context, vendor *models.Vendor) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vendorService struct {
	repo repository.VendorRepo
}

func NewVendorService(repo repository.VendorRepo) VendorService {
	return &vendorService{repo: repo}
}

func (s *vendorService) List(ctx context.Context) ([]models.Vendor, error) {
	return s.repo.FindAll(ctx)
}

func (s *vendorService) Get(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *vendorService) Create(ctx context.Context, vendor *models.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	now := time.Now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	return s.repo.Create(ctx, vendor)
}

func (s *vendorService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return s.repo.Update(ctx, id, updates)
}

func (s *vendorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
