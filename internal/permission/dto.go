package permission

import (
	"strings"

	"github.com/evisarw/visa-management/internal"
)

type CreatePermissionDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (dto CreatePermissionDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(dto.Name, ".") {
		return internal.NewValidationFieldError("name", "name must be dot-namespaced, e.g. visa_applications.approve", internal.ErrCodeValidationFailed)
	}
	return nil
}

type GrantPermissionDTO struct {
	Name string `json:"name"`
}

func (dto GrantPermissionDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
