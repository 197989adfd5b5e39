package repository

import (
	"github.com/fabiomatricardi/cm-log-system/entity"

	"gorm.io/gorm"
)

// AdminRepository talks to the admins table only.
type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) FindByUsername(username string) (*entity.Admin, error) {
	var admin entity.Admin
	if err := r.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) CountByUsername(username string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AdminRepository) Create(admin *entity.Admin) error {
	return r.DB.Create(admin).Error
}

func (r *AdminRepository) UpdatePassword(username, hash string) error {
	return r.DB.Model(&entity.Admin{}).Where("username = ?", username).Update("password", hash).Error
}
