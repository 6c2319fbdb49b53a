package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.User{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GET /users — newest first, no password column
func (r *UserRepository) List() ([]entity.User, error) {
	var users []entity.User
	err := r.DB.
		Select("id, full_name, email, role, created_at, updated_at").
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateRole(id uint, role string) (bool, error) {
	res := r.DB.Model(&entity.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
