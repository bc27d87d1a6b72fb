package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Patch agrupa os campos mutáveis de um pagamento
type Patch struct {
	AmountPaid    *decimal.Decimal
	PaymentMethod *string
	Remarks       *string
	PaymentDate   *time.Time
}

// Repository define a interface do razão de pagamentos
type Repository interface {
	// Create registra um novo pagamento
	Create(ctx context.Context, p *Payment) error

	// FindByID busca um pagamento pelo ID, restrito à firma
	FindByID(ctx context.Context, id, firmID string) (*Payment, error)

	// FindByOrderID lista os pagamentos de um pedido
	FindByOrderID(ctx context.Context, orderID string) ([]*Payment, error)

	// UpdateByID aplica um patch de correção a um pagamento
	UpdateByID(ctx context.Context, id string, patch Patch) error

	// RemoveByID remove um pagamento
	RemoveByID(ctx context.Context, id string) error

	// CalculateTotalPaid retorna SUM(amount_paid) do pedido, a fonte de
	// verdade de quanto já foi recebido
	CalculateTotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error)
}
