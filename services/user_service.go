package services

import (
	"backend/entity"
	"backend/repository"
)

// UserService covers the admin-only user registry operations.
type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List() ([]entity.User, error) {
	return s.repo.List()
}

func (s *UserService) UpdateRole(userID uint, role string) (*entity.User, error) {
	ok, err := s.repo.UpdateRole(userID, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.repo.FindByID(userID)
}
