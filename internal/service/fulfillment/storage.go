package fulfillment

import (
	"context"

	"github.com/firmdesk/firmdesk-backend/internal/domain/delivery"
	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/internal/domain/payment"
	"github.com/firmdesk/firmdesk-backend/internal/domain/stock"
)

// Stores agrupa as interfaces de capacidade que o orquestrador consome.
// Dentro de InTx todas as operações rodam na mesma transação.
type Stores interface {
	Orders() order.Repository
	Lines() order.LineRepository
	Deliveries() delivery.Repository
	Payments() payment.Repository
	Stocks() stock.Repository
}

// TxManager delimita a fronteira transacional das operações do orquestrador.
// Qualquer erro retornado por fn desfaz todas as escritas da operação.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
