package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveQuantity = errors.New("quantidade deve ser maior que zero")
	ErrNegativePrice       = errors.New("preço de venda não pode ser negativo")
)

// Line representa um item do pedido. QuantityDelivered é um cache derivado:
// deve ser sempre igual à soma das entregas registradas para a linha.
type Line struct {
	ID                string          `json:"id"`
	OrderID           string          `json:"order_id"`
	StockID           string          `json:"stock_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	QuantityDelivered decimal.Decimal `json:"quantity_delivered"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Campos denormalizados para exibição (preenchidos em consultas com join)
	StockName string `json:"stock_name,omitempty"`
	Unit      string `json:"unit,omitempty"`
}

// NewLine cria um novo item de pedido com o subtotal calculado
func NewLine(orderID, stockID string, quantity, sellingPrice decimal.Decimal) (*Line, error) {
	if !quantity.IsPositive() {
		return nil, ErrNonPositiveQuantity
	}
	if sellingPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	now := time.Now()
	return &Line{
		ID:                uuid.New().String(),
		OrderID:           orderID,
		StockID:           stockID,
		Quantity:          quantity,
		SellingPrice:      sellingPrice,
		Subtotal:          quantity.Mul(sellingPrice),
		QuantityDelivered: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// ApplyPatch atualiza quantidade e/ou preço, recalculando o subtotal
func (l *Line) ApplyPatch(quantity, sellingPrice *decimal.Decimal) error {
	if quantity != nil {
		if !quantity.IsPositive() {
			return ErrNonPositiveQuantity
		}
		l.Quantity = *quantity
	}
	if sellingPrice != nil {
		if sellingPrice.IsNegative() {
			return ErrNegativePrice
		}
		l.SellingPrice = *sellingPrice
	}
	l.Subtotal = l.Quantity.Mul(l.SellingPrice)
	l.UpdatedAt = time.Now()
	return nil
}

// Remaining retorna a quantidade ainda não entregue
func (l *Line) Remaining() decimal.Decimal {
	return l.Quantity.Sub(l.QuantityDelivered)
}

// IsFulfilled verifica se a linha já foi totalmente entregue
func (l *Line) IsFulfilled() bool {
	return l.QuantityDelivered.GreaterThanOrEqual(l.Quantity)
}
