package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type ShopRepository struct {
	DB *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{DB: db}
}

func (r *ShopRepository) Create(tx *gorm.DB, shop *entity.CoffeeShop) error {
	return tx.Create(shop).Error
}

func (r *ShopRepository) FindByID(id uint) (*entity.CoffeeShop, error) {
	var s entity.CoffeeShop
	if err := r.DB.Preload("Staff").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShopRepository) Save(shop *entity.CoffeeShop) error {
	return r.DB.Save(shop).Error
}

// ---------------- Listing ----------------

type ShopListFilter struct {
	Status          string
	City            string
	Search          string
	Archived        *bool // exact filter when set
	IncludeArchived bool  // no archived constraint at all
}

func (r *ShopRepository) buildListQuery(f ShopListFilter) *gorm.DB {
	q := r.DB.Model(&entity.CoffeeShop{})
	if f.Archived != nil {
		q = q.Where("archived = ?", *f.Archived)
	} else if !f.IncludeArchived {
		q = q.Where("archived = ?", false)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("(name LIKE ? OR description LIKE ? OR city LIKE ?)", like, like, like)
	}
	return q
}

func (r *ShopRepository) List(f ShopListFilter, page, limit int) ([]entity.CoffeeShop, int64, error) {
	var total int64
	if err := r.buildListQuery(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shops []entity.CoffeeShop
	err := r.buildListQuery(f).
		Preload("Staff").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&shops).Error
	return shops, total, err
}

// ---------------- Staff membership ----------------

func (r *ShopRepository) HasStaff(shopID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.ShopStaff{}).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *ShopRepository) AddStaff(member *entity.ShopStaff) error {
	return r.DB.Create(member).Error
}

func (r *ShopRepository) RemoveStaff(shopID, userID uint) error {
	return r.DB.Unscoped().
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Delete(&entity.ShopStaff{}).Error
}

// ShopIDsForStaff returns ids of live shops where the user is owner or on staff.
func (r *ShopRepository) ShopIDsForStaff(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.CoffeeShop{}).
		Where("archived = ?", false).
		Where("owner_id = ? OR id IN (?)", userID,
			r.DB.Model(&entity.ShopStaff{}).Select("shop_id").Where("user_id = ?", userID)).
		Pluck("id", &ids).Error
	return ids, err
}
