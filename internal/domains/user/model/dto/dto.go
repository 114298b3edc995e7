package dto

import (
	"github.com/google/uuid"

	"cadence/internal/domains/user/model"
	"cadence/shared/constant"
	gDto "cadence/shared/dto"
	gModel "cadence/shared/model"
	"cadence/shared/timezone"
)

type CreateUserRequest struct {
	Email    string  `json:"email"               validate:"required,email"`
	Password string  `json:"password"            validate:"required,min=8"`
	Role     string  `json:"role"                validate:"omitempty,oneof=admin manager bd developer"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,max=20"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleBD
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.Role = mod.Role
	r.FullName = mod.FullName
	r.Phone = mod.Phone
	r.Active = mod.Active

	if mod.LastLogin != nil {
		lastLogin := timezone.Format(*mod.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(mod.Metadata)
}
