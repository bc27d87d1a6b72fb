package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName = errors.New("nome da categoria não pode ser vazio")
)

// Category representa uma categoria de itens de estoque
type Category struct {
	ID          string    `json:"id"`
	FirmID      string    `json:"firm_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategory cria uma nova categoria
func NewCategory(firmID, createdBy, name, description string) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Category{
		ID:          uuid.New().String(),
		FirmID:      firmID,
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
