package user

import (
	internal "github.com/evisarw/visa-management/internal"
	"github.com/evisarw/visa-management/internal/core/common/validation"
	userDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/user"
)

type CreateUserDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (dto *CreateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required().Email()
	v.Field("first_name", dto.FirstName).Required().MaxLen(100)
	v.Field("last_name", dto.LastName).Required().MaxLen(100)
	v.Field("password", dto.Password).Required()
	v.Field("role", dto.Role).Required().
		OneOf(userDatamodel.RoleAdmin, userDatamodel.RoleOfficer, userDatamodel.RoleUser)

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationError("Password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ListUsersFilter struct {
	Role     string
	Search   string
	Page     int
	PageSize int
}
