package postgres

import (
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/user"
	"github.com/evisarw/visa-management/internal/permission"
)

// PermissionRepository implements permission.Repository using GORM
type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.Repository {
	return &PermissionRepository{db: db}
}

func toDomain(m *userDatamodel.Permission) *permission.Permission {
	return &permission.Permission{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func (r *PermissionRepository) GetByName(name string) (*permission.Permission, error) {
	var m userDatamodel.Permission
	if err := r.db.Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *PermissionRepository) GetActiveByName(name string) (*permission.Permission, error) {
	var m userDatamodel.Permission
	if err := r.db.Where("name = ? AND is_active = ?", name, true).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *PermissionRepository) List() ([]*permission.Permission, error) {
	var models []*userDatamodel.Permission
	if err := r.db.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	perms := make([]*permission.Permission, len(models))
	for i, m := range models {
		perms[i] = toDomain(m)
	}
	return perms, nil
}

func (r *PermissionRepository) Create(p *permission.Permission) error {
	m := &userDatamodel.Permission{
		Name:     p.Name,
		Category: p.Category,
		IsActive: p.IsActive,
	}
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	return nil
}

func (r *PermissionRepository) SetActive(id int64, active bool) error {
	return r.db.Model(&userDatamodel.Permission{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *PermissionRepository) UserExists(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *PermissionRepository) HasGrant(userID, permissionID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.UserPermission{}).
		Where("user_id = ? AND permission_id = ?", userID, permissionID).
		Count(&count).Error
	return count > 0, err
}

func (r *PermissionRepository) CreateGrant(userID, permissionID int64, grantedBy *int64) error {
	return r.db.Create(&userDatamodel.UserPermission{
		UserID:       userID,
		PermissionID: permissionID,
		GrantedBy:    grantedBy,
	}).Error
}

func (r *PermissionRepository) DeleteGrant(userID, permissionID int64) error {
	return r.db.
		Where("user_id = ? AND permission_id = ?", userID, permissionID).
		Delete(&userDatamodel.UserPermission{}).Error
}

func (r *PermissionRepository) ListGrantedNames(userID int64, activeOnly bool) ([]string, error) {
	q := r.db.Model(&userDatamodel.Permission{}).
		Select("permissions.name").
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ?", userID).
		Order("permissions.name ASC")
	if activeOnly {
		q = q.Where("permissions.is_active = ?", true)
	}

	var names []string
	if err := q.Scan(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
