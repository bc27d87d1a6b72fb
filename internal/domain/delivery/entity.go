package delivery

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveQuantity = errors.New("quantidade entregue deve ser maior que zero")
)

// Delivery representa uma entrega parcial registrada contra um item de pedido.
// O razão de entregas é a fonte de verdade de quanto já foi expedido; a soma
// das entregas de uma linha nunca pode exceder a quantidade pedida.
type Delivery struct {
	ID                string          `json:"id"`
	OrderStockID      string          `json:"order_stock_id"` // FK para o item do pedido
	FirmID            string          `json:"firm_id"`
	DeliveredQuantity decimal.Decimal `json:"delivered_quantity"`
	DeliveryDate      time.Time       `json:"delivery_date"`
	DeliveryNotes     string          `json:"delivery_notes"`
	CreatedAt         time.Time       `json:"created_at"`

	// Campos denormalizados para exibição
	StockID   string `json:"stock_id,omitempty"`
	StockName string `json:"stock_name,omitempty"`
}

// NewDelivery cria um novo registro de entrega
func NewDelivery(orderStockID, firmID string, deliveredQuantity decimal.Decimal, deliveryDate time.Time, notes string) (*Delivery, error) {
	if !deliveredQuantity.IsPositive() {
		return nil, ErrNonPositiveQuantity
	}
	if deliveryDate.IsZero() {
		deliveryDate = time.Now()
	}

	return &Delivery{
		ID:                uuid.New().String(),
		OrderStockID:      orderStockID,
		FirmID:            firmID,
		DeliveredQuantity: deliveredQuantity,
		DeliveryDate:      deliveryDate,
		DeliveryNotes:     notes,
		CreatedAt:         time.Now(),
	}, nil
}
