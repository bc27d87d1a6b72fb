package category

import (
	"context"
)

// Repository define a interface para operações de repositório de categorias
type Repository interface {
	// Create cria uma nova categoria
	Create(ctx context.Context, c *Category) error

	// FindByID busca uma categoria pelo ID, restrita à firma
	FindByID(ctx context.Context, id, firmID string) (*Category, error)

	// FindByFirmID lista as categorias de uma firma
	FindByFirmID(ctx context.Context, firmID string) ([]*Category, error)

	// Update atualiza os dados de uma categoria existente
	Update(ctx context.Context, c *Category) error

	// Delete remove uma categoria
	Delete(ctx context.Context, id, firmID string) error
}
