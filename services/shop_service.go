package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// ShopService manages the coffee-shop registry and staff membership.
type ShopService struct {
	DB       *gorm.DB
	Repo     *repository.ShopRepository
	UserRepo *repository.UserRepository
	Audit    *AuditLogger
}

func NewShopService(db *gorm.DB, repo *repository.ShopRepository, userRepo *repository.UserRepository, audit *AuditLogger) *ShopService {
	return &ShopService{DB: db, Repo: repo, UserRepo: userRepo, Audit: audit}
}

// ----- DTOs from Controller -----

type CreateShopReq struct {
	Name           string   `json:"name" binding:"required,min=3,max=160"`
	Description    string   `json:"description" binding:"required,min=10,max=2000"`
	City           string   `json:"city" binding:"required,min=2,max=120"`
	Address        string   `json:"address" binding:"required,min=5,max=300"`
	Status         string   `json:"status" binding:"omitempty,oneof=open closed maintenance"`
	MenuCategories []string `json:"menuCategories"`
	Tags           []string `json:"tags"`
}

type UpdateShopReq struct {
	Name           *string  `json:"name" binding:"omitempty,min=3,max=160"`
	Description    *string  `json:"description" binding:"omitempty,min=10,max=2000"`
	City           *string  `json:"city" binding:"omitempty,min=2,max=120"`
	Address        *string  `json:"address" binding:"omitempty,min=5,max=300"`
	Status         *string  `json:"status" binding:"omitempty,oneof=open closed maintenance"`
	MenuCategories []string `json:"menuCategories"`
	Tags           []string `json:"tags"`
	Archived       *bool    `json:"archived"`
}

type ShopListQuery struct {
	Page            int
	Limit           int
	Status          string
	City            string
	Search          string
	Archived        *bool
	IncludeArchived bool
}

type ShopListOut struct {
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Total      int64               `json:"total"`
	TotalPages int64               `json:"totalPages"`
	Items      []entity.CoffeeShop `json:"items"`
}

// ----- Create -----

func (s *ShopService) Create(actor *entity.User, req *CreateShopReq) (*entity.CoffeeShop, error) {
	status := req.Status
	if status == "" {
		status = entity.ShopStatusOpen
	}

	shop := &entity.CoffeeShop{
		Name:           req.Name,
		Description:    req.Description,
		Status:         status,
		City:           req.City,
		Address:        req.Address,
		MenuCategories: req.MenuCategories,
		Tags:           req.Tags,
		OwnerID:        actor.ID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, shop); err != nil {
			return err
		}
		member := entity.ShopStaff{ShopID: shop.ID, UserID: actor.ID, Role: "owner"}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "create_shop", "shop", shop.ID, map[string]any{
		"name": shop.Name, "city": shop.City,
	})
	return s.Repo.FindByID(shop.ID)
}

// ----- List & Detail -----

func (s *ShopService) List(actor *entity.User, q ShopListQuery) (*ShopListOut, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	filter := repository.ShopListFilter{
		Status: q.Status,
		City:   q.City,
		Search: q.Search,
	}
	// Non-admins never see archived shops; admins may filter or opt in.
	if actor.Role == RoleAdmin {
		filter.Archived = q.Archived
		filter.IncludeArchived = q.IncludeArchived
	}

	items, total, err := s.Repo.List(filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &ShopListOut{Page: page, Limit: limit, Total: total, TotalPages: totalPages(total, limit), Items: items}, nil
}

func (s *ShopService) Get(actor *entity.User, id uint) (*entity.CoffeeShop, error) {
	shop, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if actor.Role != RoleAdmin {
		if shop.Archived {
			return nil, ErrShopNotFound
		}
		if shop.Status != entity.ShopStatusOpen && shop.OwnerID != actor.ID {
			return nil, ErrForbidden
		}
	}
	return shop, nil
}

// ----- Update & Archive -----

func (s *ShopService) Update(actor *entity.User, id uint, req *UpdateShopReq) (*entity.CoffeeShop, error) {
	shop, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if !CanManageShop(actor, shop) {
		return nil, ErrForbidden
	}
	if req.Archived != nil && actor.Role != RoleAdmin {
		return nil, ErrArchiveOnly
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.City != nil {
		shop.City = *req.City
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Status != nil {
		shop.Status = *req.Status
	}
	if req.MenuCategories != nil {
		shop.MenuCategories = req.MenuCategories
	}
	if req.Tags != nil {
		shop.Tags = req.Tags
	}
	if req.Archived != nil {
		shop.Archived = *req.Archived
	}

	if err := s.Repo.Save(shop); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "update_shop", "shop", shop.ID, map[string]any{"shopId": shop.ID})
	return shop, nil
}

// Archive is admin-only and idempotence is a conflict, not a no-op.
func (s *ShopService) Archive(actor *entity.User, id uint) error {
	if actor.Role != RoleAdmin {
		return ErrForbidden
	}
	shop, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShopNotFound
		}
		return err
	}
	if shop.Archived {
		return ErrAlreadyArchived
	}

	shop.Archived = true
	if err := s.Repo.Save(shop); err != nil {
		return err
	}

	s.Audit.Record(actor.ID, "archive_shop", "shop", shop.ID, map[string]any{})
	return nil
}

// ----- Staff membership -----

func (s *ShopService) AddStaff(actor *entity.User, shopID, userID uint, role string) (*entity.CoffeeShop, error) {
	shop, err := s.Repo.FindByID(shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if shop.Archived {
		return nil, ErrShopNotFound
	}
	if !CanManageShop(actor, shop) {
		return nil, ErrForbidden
	}

	exists, err := s.UserRepo.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	already, err := s.Repo.HasStaff(shopID, userID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrDuplicateStaff
	}

	if role == "" {
		role = "barista"
	}
	member := &entity.ShopStaff{ShopID: shopID, UserID: userID, Role: role}
	if err := s.Repo.AddStaff(member); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "add_shop_staff", "shop", shopID, map[string]any{
		"userId": userID, "role": role,
	})
	return s.Repo.FindByID(shopID)
}

func (s *ShopService) RemoveStaff(actor *entity.User, shopID, userID uint) (*entity.CoffeeShop, error) {
	shop, err := s.Repo.FindByID(shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	if shop.Archived {
		return nil, ErrShopNotFound
	}
	if !CanManageShop(actor, shop) {
		return nil, ErrForbidden
	}
	if shop.OwnerID == userID {
		return nil, ErrOwnerStaff
	}

	if err := s.Repo.RemoveStaff(shopID, userID); err != nil {
		return nil, err
	}

	s.Audit.Record(actor.ID, "remove_shop_staff", "shop", shopID, map[string]any{"userId": userID})
	return s.Repo.FindByID(shopID)
}

// ----- helpers -----

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
