package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/evisarw/visa-management/internal/auth"
	userDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByEmail(email string) (int64, string, bool, error) {
	var userID int64
	var passwordHash string
	var isActive bool

	query := `SELECT id, password_hash, is_active FROM users WHERE email = ?`
	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &isActive); err != nil {
		if err == sql.ErrNoRows {
			return 0, "", false, fmt.Errorf("user not found")
		}
		return 0, "", false, err
	}
	return userID, passwordHash, isActive, nil
}

func (r *Repository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, role FROM users WHERE id = ? AND is_active = true`
	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	// only active permissions count; deactivating a permission silently
	// revokes its effect for all holders
	permQuery := `SELECT p.name
	             FROM permissions p
	             JOIN user_permissions up ON p.id = up.permission_id
	             WHERE up.user_id = ? AND p.is_active = true`

	rows, err := r.db.Raw(permQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var permName string
		if err := rows.Scan(&permName); err != nil {
			return nil, err
		}
		permissions = append(permissions, permName)
	}

	user.Permissions = permissions
	return &user, nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateUser(email, firstName, lastName, passwordHash, role string) (int64, error) {
	u := &userDatamodel.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
	if err := r.db.Create(u).Error; err != nil {
		return 0, err
	}
	return u.ID, nil
}
