package permission_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/evisarw/visa-management/internal"
	"github.com/evisarw/visa-management/internal/permission"
)

func TestPermissionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Service Suite")
}

type grantKey struct {
	userID       int64
	permissionID int64
}

type mockPermissionRepository struct {
	permissions map[string]*permission.Permission
	grants      map[grantKey]bool
	users       map[int64]bool
	nextID      int64

	createGrantError error
	lookupError      error
	createdGrants    int
}

func newMockPermissionRepository() *mockPermissionRepository {
	return &mockPermissionRepository{
		permissions: make(map[string]*permission.Permission),
		grants:      make(map[grantKey]bool),
		users:       make(map[int64]bool),
		nextID:      1,
	}
}

func (m *mockPermissionRepository) addPermission(name string, active bool) *permission.Permission {
	p := &permission.Permission{ID: m.nextID, Name: name, IsActive: active}
	m.nextID++
	m.permissions[name] = p
	return p
}

func (m *mockPermissionRepository) GetByName(name string) (*permission.Permission, error) {
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	p, exists := m.permissions[name]
	if !exists {
		return nil, nil
	}
	return p, nil
}

func (m *mockPermissionRepository) GetActiveByName(name string) (*permission.Permission, error) {
	if m.lookupError != nil {
		return nil, m.lookupError
	}
	p, exists := m.permissions[name]
	if !exists || !p.IsActive {
		return nil, nil
	}
	return p, nil
}

func (m *mockPermissionRepository) List() ([]*permission.Permission, error) {
	result := make([]*permission.Permission, 0, len(m.permissions))
	for _, p := range m.permissions {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPermissionRepository) Create(p *permission.Permission) error {
	p.ID = m.nextID
	m.nextID++
	m.permissions[p.Name] = p
	return nil
}

func (m *mockPermissionRepository) SetActive(id int64, active bool) error {
	for _, p := range m.permissions {
		if p.ID == id {
			p.IsActive = active
		}
	}
	return nil
}

func (m *mockPermissionRepository) UserExists(userID int64) (bool, error) {
	return m.users[userID], nil
}

func (m *mockPermissionRepository) HasGrant(userID, permissionID int64) (bool, error) {
	return m.grants[grantKey{userID, permissionID}], nil
}

func (m *mockPermissionRepository) CreateGrant(userID, permissionID int64, grantedBy *int64) error {
	if m.createGrantError != nil {
		return m.createGrantError
	}
	m.grants[grantKey{userID, permissionID}] = true
	m.createdGrants++
	return nil
}

func (m *mockPermissionRepository) DeleteGrant(userID, permissionID int64) error {
	delete(m.grants, grantKey{userID, permissionID})
	return nil
}

func (m *mockPermissionRepository) ListGrantedNames(userID int64, activeOnly bool) ([]string, error) {
	names := make([]string, 0)
	for key := range m.grants {
		if key.userID != userID {
			continue
		}
		for _, p := range m.permissions {
			if p.ID == key.permissionID && (!activeOnly || p.IsActive) {
				names = append(names, p.Name)
			}
		}
	}
	return names, nil
}

var _ = Describe("PermissionService", func() {
	var (
		service  *permission.Service
		mockRepo *mockPermissionRepository
	)

	BeforeEach(func() {
		mockRepo = newMockPermissionRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = permission.NewService(mockRepo, logger)
		mockRepo.users[1] = true
	})

	Describe("Grant", func() {
		It("grants an active permission to an existing user", func() {
			mockRepo.addPermission(permission.ApplicationsApprove, true)

			err := service.Grant(1, permission.ApplicationsApprove, nil)

			Expect(err).ToNot(HaveOccurred())
			held, err := service.UserHasPermission(1, permission.ApplicationsApprove)
			Expect(err).ToNot(HaveOccurred())
			Expect(held).To(BeTrue())
		})

		It("is a no-op when the permission is already held", func() {
			mockRepo.addPermission(permission.ApplicationsApprove, true)

			Expect(service.Grant(1, permission.ApplicationsApprove, nil)).To(Succeed())
			Expect(service.Grant(1, permission.ApplicationsApprove, nil)).To(Succeed())

			Expect(mockRepo.createdGrants).To(Equal(1))
		})

		It("fails for an unknown user", func() {
			mockRepo.addPermission(permission.ApplicationsApprove, true)

			err := service.Grant(999, permission.ApplicationsApprove, nil)

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("fails for an unknown permission", func() {
			err := service.Grant(1, "nonexistent.permission", nil)

			Expect(err).To(Equal(internal.ErrPermissionNotFound))
		})

		It("fails for a deactivated permission", func() {
			mockRepo.addPermission(permission.ApplicationsApprove, false)

			err := service.Grant(1, permission.ApplicationsApprove, nil)

			Expect(err).To(Equal(internal.ErrPermissionNotFound))
		})
	})

	Describe("UserHasPermission", func() {
		It("does not count grants of deactivated permissions", func() {
			p := mockRepo.addPermission(permission.ReportsExport, true)
			Expect(service.Grant(1, permission.ReportsExport, nil)).To(Succeed())

			Expect(mockRepo.SetActive(p.ID, false)).To(Succeed())

			held, err := service.UserHasPermission(1, permission.ReportsExport)
			Expect(err).ToNot(HaveOccurred())
			Expect(held).To(BeFalse())
		})

		It("reports false for a permission never granted", func() {
			mockRepo.addPermission(permission.ReportsExport, true)

			held, err := service.UserHasPermission(1, permission.ReportsExport)
			Expect(err).ToNot(HaveOccurred())
			Expect(held).To(BeFalse())
		})

		It("surfaces a store failure instead of reporting the permission as not held", func() {
			mockRepo.addPermission(permission.ReportsExport, true)
			mockRepo.lookupError = errors.New("connection refused")

			held, err := service.UserHasPermission(1, permission.ReportsExport)
			Expect(err).To(MatchError("connection refused"))
			Expect(held).To(BeFalse())
		})
	})

	Describe("Revoke", func() {
		It("removes a held permission", func() {
			mockRepo.addPermission(permission.ArrivalsCreate, true)
			Expect(service.Grant(1, permission.ArrivalsCreate, nil)).To(Succeed())

			Expect(service.Revoke(1, permission.ArrivalsCreate)).To(Succeed())

			held, _ := service.UserHasPermission(1, permission.ArrivalsCreate)
			Expect(held).To(BeFalse())
		})

		It("is a no-op when the permission is not held", func() {
			mockRepo.addPermission(permission.ArrivalsCreate, true)

			Expect(service.Revoke(1, permission.ArrivalsCreate)).To(Succeed())
		})
	})

	Describe("Create", func() {
		It("creates a new active permission", func() {
			result, err := service.Create(permission.CreatePermissionDTO{
				Name:     "reports.audit",
				Category: "reports",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.IsActive).To(BeTrue())
			Expect(result.ID).To(BeNumerically(">", 0))
		})

		It("refuses a duplicate name", func() {
			mockRepo.addPermission("reports.audit", true)

			_, err := service.Create(permission.CreatePermissionDTO{Name: "reports.audit"})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Deactivate and Activate", func() {
		It("toggles the active flag", func() {
			mockRepo.addPermission(permission.UsersManage, true)

			Expect(service.Deactivate(permission.UsersManage)).To(Succeed())
			Expect(mockRepo.permissions[permission.UsersManage].IsActive).To(BeFalse())

			Expect(service.Activate(permission.UsersManage)).To(Succeed())
			Expect(mockRepo.permissions[permission.UsersManage].IsActive).To(BeTrue())
		})
	})
})
