package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID, restrito à firma
	FindByID(ctx context.Context, id, firmID string) (*Customer, error)

	// List lista os clientes de uma firma com paginação
	List(ctx context.Context, firmID string, limit, offset int) ([]*Customer, error)

	// FindByName busca clientes pelo nome
	FindByName(ctx context.Context, firmID, name string, limit, offset int) ([]*Customer, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error

	// CountByFirm conta quantos clientes existem para uma firma
	CountByFirm(ctx context.Context, firmID string) (int, error)
}
