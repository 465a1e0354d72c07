package permission

import (
	"log/slog"

	"github.com/evisarw/visa-management/internal"
)

// Service implements the permission store: grant, revoke, list and check.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// UserHasPermission reports whether the user holds the named permission and
// the permission is still active. Deactivated or unknown permissions count as
// not held; a store failure is an error, never a silent "no".
func (s *Service) UserHasPermission(userID int64, name string) (bool, error) {
	perm, err := s.repo.GetActiveByName(name)
	if err != nil {
		return false, err
	}
	if perm == nil {
		return false, nil
	}
	return s.repo.HasGrant(userID, perm.ID)
}

// Grant gives the user the named permission. Granting an already-held
// permission is a silent no-op; the (user, permission) pair stays unique.
func (s *Service) Grant(userID int64, name string, grantedBy *int64) error {
	exists, err := s.repo.UserExists(userID)
	if err != nil {
		return err
	}
	if !exists {
		return internal.ErrUserNotFound
	}

	perm, err := s.repo.GetActiveByName(name)
	if err != nil {
		return err
	}
	if perm == nil {
		return internal.ErrPermissionNotFound
	}

	held, err := s.repo.HasGrant(userID, perm.ID)
	if err != nil {
		return err
	}
	if held {
		s.logger.Debug("grant is a no-op, permission already held",
			"user_id", userID, "permission", name)
		return nil
	}

	if err := s.repo.CreateGrant(userID, perm.ID, grantedBy); err != nil {
		s.logger.Error("failed to create grant", "error", err, "user_id", userID, "permission", name)
		return err
	}

	s.logger.Info("permission granted", "user_id", userID, "permission", name)
	return nil
}

// Revoke removes the named permission from the user. Revoking a permission
// that is not held is a silent no-op.
func (s *Service) Revoke(userID int64, name string) error {
	perm, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	if perm == nil {
		return internal.ErrPermissionNotFound
	}

	if err := s.repo.DeleteGrant(userID, perm.ID); err != nil {
		s.logger.Error("failed to revoke grant", "error", err, "user_id", userID, "permission", name)
		return err
	}

	s.logger.Info("permission revoked", "user_id", userID, "permission", name)
	return nil
}

// ListPermissions returns the names of the user's active permissions.
func (s *Service) ListPermissions(userID int64) ([]string, error) {
	return s.repo.ListGrantedNames(userID, true)
}

func (s *Service) ListAll() ([]*Permission, error) {
	return s.repo.List()
}

func (s *Service) Create(dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("Permission already exists", internal.ErrCodeValidationFailed)
	}

	perm := &Permission{
		Name:     dto.Name,
		Category: dto.Category,
		IsActive: true,
	}
	if err := s.repo.Create(perm); err != nil {
		return nil, err
	}

	s.logger.Info("permission created", "permission", perm.Name, "category", perm.Category)
	return perm, nil
}

// Deactivate soft-disables a permission. Grant history is preserved; the
// permission simply stops taking effect for all holders.
func (s *Service) Deactivate(name string) error {
	perm, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	if perm == nil {
		return internal.ErrPermissionNotFound
	}

	if err := s.repo.SetActive(perm.ID, false); err != nil {
		return err
	}

	s.logger.Info("permission deactivated", "permission", name)
	return nil
}

func (s *Service) Activate(name string) error {
	perm, err := s.repo.GetByName(name)
	if err != nil {
		return err
	}
	if perm == nil {
		return internal.ErrPermissionNotFound
	}

	if err := s.repo.SetActive(perm.ID, true); err != nil {
		return err
	}

	s.logger.Info("permission activated", "permission", name)
	return nil
}
