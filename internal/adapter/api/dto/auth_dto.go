package dto

import (
	"time"

	"github.com/firmdesk/firmdesk-backend/internal/domain/firm"
	"github.com/firmdesk/firmdesk-backend/internal/domain/user"
)

// RegisterRequest representa a requisição de cadastro de firma com usuário dono
type RegisterRequest struct {
	FirmName  string `json:"firm_name" binding:"required"`
	GstNo     string `json:"gst_no"`
	City      string `json:"city"`
	Street    string `json:"street"`
	UserName  string `json:"user_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	ContactNo string `json:"contact_no"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest representa a requisição de renovação de token
type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// UserResponse representa os dados públicos de um usuário
type UserResponse struct {
	ID        string    `json:"id"`
	FirmID    string    `json:"firm_id"`
	Name      string    `json:"name"`
	ContactNo string    `json:"contact_no"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FirmResponse representa os dados de uma firma
type FirmResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	GstNo     string    `json:"gst_no"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse representa a resposta de autenticação com token
type AuthResponse struct {
	Token string        `json:"token"`
	User  UserResponse  `json:"user"`
	Firm  *FirmResponse `json:"firm,omitempty"`
}

// ToUserResponse converte um usuário do domínio para a resposta da API
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirmID:    u.FirmID,
		Name:      u.Name,
		ContactNo: u.ContactNo,
		Email:     u.Email,
		Role:      string(u.Role),
		Bio:       u.Bio,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

// ToFirmResponse converte uma firma do domínio para a resposta da API
func ToFirmResponse(f *firm.Firm) FirmResponse {
	return FirmResponse{
		ID:        f.ID,
		Name:      f.Name,
		GstNo:     f.GstNo,
		City:      f.City,
		Street:    f.Street,
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt,
	}
}
