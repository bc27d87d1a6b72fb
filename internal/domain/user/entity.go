package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("nome não pode ser vazio")
	ErrEmptyEmail    = errors.New("email não pode ser vazio")
	ErrEmptyPassword = errors.New("senha não pode ser vazia")
	ErrInvalidRole   = errors.New("papel de usuário inválido")
)

// Role representa o papel do usuário dentro da firma
type Role string

const (
	RoleOwner Role = "owner" // Dono da firma
	RoleAdmin Role = "admin" // Administrador
	RoleStaff Role = "staff" // Funcionário regular
)

// Status representa o status do usuário
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User representa um usuário (funcionário) de uma firma
type User struct {
	ID        string    `json:"id"`
	FirmID    string    `json:"firm_id"`
	Name      string    `json:"name"`
	ContactNo string    `json:"contact_no"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Hash da senha, nunca exposto em respostas JSON
	Role      Role      `json:"role"`
	Bio       string    `json:"bio"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário vinculado a uma firma
func NewUser(firmID, name, email, contactNo string, role Role) (*User, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}
	switch role {
	case RoleOwner, RoleAdmin, RoleStaff:
	default:
		return nil, ErrInvalidRole
	}

	now := time.Now()
	return &User{
		ID:        uuid.New().String(),
		FirmID:    firmID,
		Name:      name,
		Email:     email,
		ContactNo: contactNo,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsOwner verifica se o usuário é o dono da firma
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
