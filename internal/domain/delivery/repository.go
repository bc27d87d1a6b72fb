package delivery

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Patch agrupa os campos mutáveis de uma entrega
type Patch struct {
	DeliveredQuantity *decimal.Decimal
	DeliveryDate      *time.Time
	DeliveryNotes     *string
}

// Repository define a interface do razão de entregas
type Repository interface {
	// Create registra uma nova entrega
	Create(ctx context.Context, d *Delivery) error

	// FindByID busca uma entrega pelo ID, restrita à firma
	FindByID(ctx context.Context, id, firmID string) (*Delivery, error)

	// FindByOrderID lista as entregas de um pedido com dados do item
	FindByOrderID(ctx context.Context, orderID string) ([]*Delivery, error)

	// UpdateByID aplica um patch de correção a uma entrega
	UpdateByID(ctx context.Context, id string, patch Patch) error

	// RemoveByID remove uma entrega
	RemoveByID(ctx context.Context, id string) error

	// RemoveByLineID remove todas as entregas de um item de pedido
	RemoveByLineID(ctx context.Context, lineID string) error

	// CalculateTotalDelivered retorna SUM(delivered_quantity) do item, a
	// fonte de verdade de quanto já foi expedido
	CalculateTotalDelivered(ctx context.Context, lineID string) (decimal.Decimal, error)
}
