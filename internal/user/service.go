package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	internal "github.com/evisarw/visa-management/internal"
	userDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/user"
)

type ServiceAPI interface {
	ListUsers(filter ListUsersFilter) ([]*User, int64, error)
	GetUser(id int64) (*User, error)
	CreateUser(dto *CreateUserDTO, createdBy int64) (*User, error)
	SetActive(id int64, active bool) (*User, error)
	DeleteUser(id int64) error
}

type RepositoryAPI interface {
	GetByID(id int64) (*userDatamodel.User, error)
	List(filter ListUsersFilter) ([]*userDatamodel.User, int64, error)
	EmailExists(email string) (bool, error)
	Create(u *userDatamodel.User) error
	SetActive(id int64, active bool) error
	// ReferencedByArrivals reports whether the user appears as approver or
	// processing officer on any arrival record.
	ReferencedByArrivals(id int64) (bool, error)
	Delete(id int64) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) ListUsers(filter ListUsersFilter) ([]*User, int64, error) {
	models, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, 0, internal.NewInternalError("Failed to list users", err)
	}
	return FromDataModelSlice(models), total, nil
}

func (s *Service) GetUser(id int64) (*User, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("Failed to get user", err)
	}
	if model == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) CreateUser(dto *CreateUserDTO, createdBy int64) (*User, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	exists, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", "error", err)
		return nil, internal.NewInternalError("Failed to create user", err)
	}
	if exists {
		return nil, internal.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("Failed to create user", err)
	}

	model := &userDatamodel.User{
		Email:        dto.Email,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		PasswordHash: string(hash),
		Role:         dto.Role,
		IsActive:     true,
		CreatedBy:    &createdBy,
	}
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("Failed to create user", err)
	}

	s.logger.Info("user created", "user_id", model.ID, "role", model.Role, "created_by", createdBy)
	return FromDataModel(model), nil
}

func (s *Service) SetActive(id int64, active bool) (*User, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("Failed to get user", err)
	}
	if model == nil {
		return nil, internal.ErrUserNotFound
	}

	if err := s.repo.SetActive(id, active); err != nil {
		s.logger.Error("failed to update user active flag", "error", err, "user_id", id)
		return nil, internal.NewInternalError("Failed to update user", err)
	}

	model.IsActive = active
	s.logger.Info("user active flag updated", "user_id", id, "is_active", active)
	return FromDataModel(model), nil
}

// DeleteUser refuses to delete officers referenced by arrival records so
// the processing audit trail stays intact; deactivate them instead.
func (s *Service) DeleteUser(id int64) error {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("Failed to get user", err)
	}
	if model == nil {
		return internal.ErrUserNotFound
	}

	referenced, err := s.repo.ReferencedByArrivals(id)
	if err != nil {
		s.logger.Error("failed to check arrival references", "error", err, "user_id", id)
		return internal.NewInternalError("Failed to delete user", err)
	}
	if referenced {
		s.logger.Warn("refusing to delete user referenced by arrival records", "user_id", id)
		return internal.ErrUserReferenced
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewInternalError("Failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
