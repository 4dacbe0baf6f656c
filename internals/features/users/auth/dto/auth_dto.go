// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"github.com/google/uuid"

	userModel "schoolku_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

func FromUserModel(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
	StudentID   *uuid.UUID   `json:"student_id,omitempty"`
}
