package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
)

// UserService manages customer records from the admin side. Customers are
// created by the ordering flow, not here; the admin lists, blocks and
// removes them.
type UserService interface {
	List(ctx context.Context, search string, page, limit int) ([]models.User, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepo
}

func NewUserService(repo repository.UserRepo) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, search string, page, limit int) ([]models.User, int64, error) {
	filter := map[string]interface{}{}
	if search != "" {
		filter["$or"] = []map[string]interface{}{
			{"name": map[string]interface{}{"$regex": search, "$options": "i"}},
			{"phone": map[string]interface{}{"$regex": search, "$options": "i"}},
		}
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	users, err := s.repo.Find(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	return s.repo.Update(ctx, id, map[string]interface{}{"is_blocked": blocked})
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type DeliveryPartnerService interface {
	List(ctx context.Context) ([]models.DeliveryPartner, error)
	Get(ctx context.Context, id uuid.UUID) (*models.DeliveryPartner, error)
	Create(ctx context.Context, partner *models.DeliveryPartner) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type deliveryPartnerService struct {
	repo repository.DeliveryPartnerRepo
}

func NewDeliveryPartnerService(repo repository.DeliveryPartnerRepo) DeliveryPartnerService {
	return &deliveryPartnerService{repo: repo}
}

func (s *deliveryPartnerService) List(ctx context.Context) ([]models.DeliveryPartner, error) {
	return s.repo.FindAll(ctx)
}

func (s *deliveryPartnerService) Get(ctx context.Context, id uuid.UUID) (*models.DeliveryPartner, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *deliveryPartnerService) Create(ctx context.Context, partner *models.DeliveryPartner) error {
	if partner.ID == uuid.Nil {
		partner.ID = uuid.New()
	}
	now := time.Now().UTC()
	partner.CreatedAt = now
	partner.UpdatedAt = now
	return s.repo.Create(ctx, partner)
}

func (s *deliveryPartnerService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return s.repo.Update(ctx, id, updates)
}

func (s *deliveryPartnerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type UPIMethodService interface {
	List(ctx context.Context) ([]models.UPIMethod, error)
	Get(ctx context.Context, id uuid.UUID) (*models.UPIMethod, error)
	Create(ctx context.Context, method *models.UPIMethod) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type upiMethodService struct {
	repo repository.UPIMethodRepo
}

func NewUPIMethodService(repo repository.UPIMethodRepo) UPIMethodService {
	return &upiMethodService{repo: repo}
}

func (s *upiMethodService) List(ctx context.Context) ([]models.UPIMethod, error) {
	return s.repo.FindAll(ctx)
}

func (s *upiMethodService) Get(ctx context.Context, id uuid.UUID) (*models.UPIMethod, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *upiMethodService) Create(ctx context.Context, method *models.UPIMethod) error {
	if method.ID == uuid.Nil {
		method.ID = uuid.New()
	}
	now := time.Now().UTC()
	method.CreatedAt = now
	method.UpdatedAt = now
	return s.repo.Create(ctx, method)
}

func (s *upiMethodService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return s.repo.Update(ctx, id, updates)
}

func (s *upiMethodService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
