package permission

import "time"

// Well-known permission names. Names are dot-namespaced as
// "<resource>.<action>".
const (
	ApplicationsView    = "visa_applications.view"
	ApplicationsUpdate  = "visa_applications.update"
	ApplicationsDelete  = "visa_applications.delete"
	ApplicationsApprove = "visa_applications.approve"
	ApplicationsReject  = "visa_applications.reject"

	ArrivalsView   = "arrival_records.view"
	ArrivalsCreate = "arrival_records.create"
	ArrivalsUpdate = "arrival_records.update"

	UsersView   = "users.view"
	UsersManage = "users.manage"

	PermissionsManage = "permissions.manage"
	CountriesManage   = "countries.manage"

	ReportsView   = "reports.view"
	ReportsExport = "reports.export"
)

type Permission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Grant struct {
	UserID       int64     `json:"user_id"`
	PermissionID int64     `json:"permission_id"`
	Name         string    `json:"name"`
	GrantedBy    *int64    `json:"granted_by,omitempty"`
	GrantedAt    time.Time `json:"granted_at"`
}

// Repository is the data access contract for the permission store.
type Repository interface {
	GetByName(name string) (*Permission, error)
	GetActiveByName(name string) (*Permission, error)
	List() ([]*Permission, error)
	Create(p *Permission) error
	SetActive(id int64, active bool) error

	UserExists(userID int64) (bool, error)
	HasGrant(userID, permissionID int64) (bool, error)
	CreateGrant(userID, permissionID int64, grantedBy *int64) error
	DeleteGrant(userID, permissionID int64) error
	ListGrantedNames(userID int64, activeOnly bool) ([]string, error)
}
