package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minisocial/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfilePic(userID uint, filename string) error {
	res := r.db.Model(&model.User{}).Where("id = ?", userID).Update("profile_pic", filename)
	if res.Error != nil {
		return fmt.Errorf("update profile pic failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update profile pic failed: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
