package dto

import (
	"simpeg_backend/internal/feature/auth/domain/entity"
	"simpeg_backend/internal/shared/access"
)

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse はユーザー情報のレスポンスです。パスワードハッシュは含みません。
type UserResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  access.Role `json:"role"`
}

// NewUserResponse はエンティティからUserResponseを生成します。
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// TokenResponse は/loginの成功レスポンスです。
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MeResponse は/meのレスポンスで、ロールから導出した操作可否を含みます。
type MeResponse struct {
	UserResponse
	Can access.CapabilitySet `json:"can"`
}
