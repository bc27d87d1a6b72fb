package firm

import (
	"context"
)

// Repository define a interface para operações de repositório de firmas
type Repository interface {
	// Create cria uma nova firma
	Create(ctx context.Context, f *Firm) error

	// FindByID busca uma firma pelo ID
	FindByID(ctx context.Context, id string) (*Firm, error)

	// FindByGst busca uma firma pelo número fiscal
	FindByGst(ctx context.Context, gstNo string) (*Firm, error)

	// Update atualiza os dados de uma firma existente
	Update(ctx context.Context, f *Firm) error
}
