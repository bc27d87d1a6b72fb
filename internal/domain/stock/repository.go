package stock

import (
	"context"

	"github.com/shopspring/decimal"
)

// Filter define os filtros de listagem de estoque
type Filter struct {
	CategoryID string
	Search     string // Busca por nome ou SKU
	StartDate  string
	EndDate    string
}

// Repository define a interface para operações de repositório de estoque.
// AdjustQuantity e QuantityAvailable formam o razão de inventário: a verificação
// de suficiência e o ajuste devem rodar na mesma transação do chamador.
type Repository interface {
	// Create cria um novo item de estoque
	Create(ctx context.Context, s *Stock) error

	// FindByID busca um item ativo pelo ID, restrito à firma
	FindByID(ctx context.Context, id, firmID string) (*Stock, error)

	// FindBySku busca um item ativo pelo SKU, restrito à firma
	FindBySku(ctx context.Context, sku, firmID string) (*Stock, error)

	// List lista os itens de uma firma com filtros e paginação
	List(ctx context.Context, firmID string, filter Filter, limit, offset int) ([]*Stock, int, error)

	// FindLowStock lista os itens abaixo do limite de alerta
	FindLowStock(ctx context.Context, firmID string) ([]*Stock, error)

	// Update atualiza os dados de um item existente
	Update(ctx context.Context, s *Stock) error

	// AdjustQuantity aplica quantity_available += delta de forma atômica,
	// restrito à firma, e retorna o item atualizado
	AdjustQuantity(ctx context.Context, id, firmID string, delta decimal.Decimal) (*Stock, error)

	// QuantityAvailable retorna a quantidade disponível e o nome do item,
	// travando a linha para a transação corrente
	QuantityAvailable(ctx context.Context, id, firmID string) (decimal.Decimal, string, error)

	// SoftDelete desativa um item de estoque
	SoftDelete(ctx context.Context, id, firmID string) error
}
