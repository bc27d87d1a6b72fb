package firm

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName = errors.New("nome da firma não pode ser vazio")
)

// Status representa o estado da firma
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Firm representa uma firma (tenant); todos os dados do sistema são isolados por firma
type Firm struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`       // Razão social
	GstNo     string    `json:"gst_no"`     // Número fiscal (GST)
	City      string    `json:"city"`       // Cidade
	Street    string    `json:"street"`     // Endereço
	Status    Status    `json:"status"`     // Status da firma
	CreatedAt time.Time `json:"created_at"` // Data de criação
	UpdatedAt time.Time `json:"updated_at"` // Data de atualização
}

// NewFirm cria uma nova firma
func NewFirm(name, gstNo, city, street string) (*Firm, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Firm{
		ID:        uuid.New().String(),
		Name:      name,
		GstNo:     gstNo,
		City:      city,
		Street:    street,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive verifica se a firma está ativa
func (f *Firm) IsActive() bool {
	return f.Status == StatusActive
}
