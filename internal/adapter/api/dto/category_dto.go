package dto

import (
	"time"

	"github.com/firmdesk/firmdesk-backend/internal/domain/category"
)

// CategoryRequest representa a requisição de criação/atualização de categoria
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse representa a resposta com dados de uma categoria
type CategoryResponse struct {
	ID          string    `json:"id"`
	FirmID      string    `json:"firm_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converte uma categoria do domínio para a resposta da API
func ToCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		FirmID:      c.FirmID,
		Name:        c.Name,
		Description: c.Description,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryListResponse converte uma lista de categorias para a resposta da API
func ToCategoryListResponse(categories []*category.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, ToCategoryResponse(c))
	}
	return responses
}
