package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	arrivalDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/arrival"
	userDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/user"
	"github.com/evisarw/visa-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(filter user.ListUsersFilter) ([]*userDatamodel.User, int64, error) {
	query := r.db.Model(&userDatamodel.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	var users []*userDatamodel.User
	err := query.Order("created_at DESC").Limit(filter.PageSize).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) SetActive(id int64, active bool) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *UserRepository) ReferencedByArrivals(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&arrivalDatamodel.ArrivalRecord{}).
		Where("approved_by = ? OR arrival_processed_by = ? OR departure_processed_by = ?", id, id, id).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&userDatamodel.UserPermission{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
	})
}
