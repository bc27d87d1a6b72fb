package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Filter define os filtros de listagem de pedidos
type Filter struct {
	OrderStatus    Status
	PaymentStatus  PaymentStatus
	DeliveryStatus DeliveryStatus
}

// StatusPatch agrupa os campos derivados persistidos no recálculo de status
type StatusPatch struct {
	TotalAmount     *decimal.Decimal
	TotalPaidAmount *decimal.Decimal
	OrderStatus     *Status
	PaymentStatus   *PaymentStatus
	DeliveryStatus  *DeliveryStatus
	OrderDate       *time.Time
	InvoiceNo       *int64
}

// Repository define a interface para operações de repositório de pedidos
type Repository interface {
	// Create cria um novo pedido
	Create(ctx context.Context, o *Order) error

	// FindByID busca um pedido pelo ID, restrito à firma
	FindByID(ctx context.Context, id, firmID string) (*Order, error)

	// FindByIDForUpdate busca um pedido travando a linha para a transação
	// corrente; serializa mutações concorrentes sobre o mesmo pedido
	FindByIDForUpdate(ctx context.Context, id, firmID string) (*Order, error)

	// LatestInvoiceNo retorna o maior número de fatura da firma (0 se não houver)
	LatestInvoiceNo(ctx context.Context, firmID string) (int64, error)

	// List lista os pedidos de uma firma com filtros e paginação
	List(ctx context.Context, firmID string, filter Filter, limit, offset int) ([]*Order, int, error)

	// ListPendingDelivery lista pedidos com entrega pendente ou parcial
	ListPendingDelivery(ctx context.Context, firmID string, limit, offset int) ([]*Order, int, error)

	// ListPendingPayment lista pedidos não cancelados ainda não quitados
	ListPendingPayment(ctx context.Context, firmID string, limit, offset int) ([]*Order, int, error)

	// UpdateByID aplica um patch parcial ao pedido e retorna o registro atualizado
	UpdateByID(ctx context.Context, id, firmID string, patch StatusPatch) (*Order, error)
}

// LinePatch agrupa os campos mutáveis de um item de pedido
type LinePatch struct {
	Quantity          *decimal.Decimal
	SellingPrice      *decimal.Decimal
	QuantityDelivered *decimal.Decimal
}

// LineRepository define a interface do armazenamento de itens de pedido
type LineRepository interface {
	// Create cria um novo item de pedido
	Create(ctx context.Context, l *Line) error

	// FindByID busca um item pelo ID
	FindByID(ctx context.Context, id string) (*Line, error)

	// FindByOrderID lista os itens de um pedido
	FindByOrderID(ctx context.Context, orderID string) ([]*Line, error)

	// FindByOrderIDWithStock lista os itens com nome e unidade do estoque
	FindByOrderIDWithStock(ctx context.Context, orderID string) ([]*Line, error)

	// UpdateByID aplica um patch ao item, recalculando o subtotal quando
	// quantidade ou preço mudam, e retorna o registro atualizado
	UpdateByID(ctx context.Context, id string, patch LinePatch) (*Line, error)

	// RemoveByID remove fisicamente um item
	RemoveByID(ctx context.Context, id string) error

	// CalculateTotalAmount retorna SUM(subtotal) do pedido, o total autoritativo
	CalculateTotalAmount(ctx context.Context, orderID string) (decimal.Decimal, error)
}
