package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomer = errors.New("cliente do pedido não pode ser vazio")
	ErrNoItems       = errors.New("pedido deve conter ao menos um item")
)

// Status representa o estado geral do pedido
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// PaymentStatus representa o estado financeiro do pedido
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
)

// DeliveryStatus representa o estado de entrega do pedido
type DeliveryStatus string

const (
	DeliveryPending            DeliveryStatus = "PENDING"
	DeliveryPartiallyDelivered DeliveryStatus = "PARTIALLY_DELIVERED"
	DeliveryDelivered          DeliveryStatus = "DELIVERED"
)

// Order é a raiz do agregado de pedido de venda. Os três campos de status são
// derivados dos razões de entrega e pagamento e recalculados a cada mutação.
type Order struct {
	ID              string          `json:"id"`
	FirmID          string          `json:"firm_id"`
	CustomerID      string          `json:"customer_id"`
	CreatedBy       string          `json:"created_by"`
	OrderDate       time.Time       `json:"order_date"`
	InvoiceNo       int64           `json:"invoice_no"` // Único por firma, estritamente crescente
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TotalPaidAmount decimal.Decimal `json:"total_paid_amount"`
	OrderStatus     Status          `json:"order_status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	DeliveryStatus  DeliveryStatus  `json:"delivery_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewOrder cria um novo pedido no estado inicial PENDING/UNPAID/PENDING
func NewOrder(firmID, customerID, createdBy string, orderDate time.Time, invoiceNo int64) (*Order, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomer
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	now := time.Now()
	return &Order{
		ID:              uuid.New().String(),
		FirmID:          firmID,
		CustomerID:      customerID,
		CreatedBy:       createdBy,
		OrderDate:       orderDate,
		InvoiceNo:       invoiceNo,
		TotalAmount:     decimal.Zero,
		TotalPaidAmount: decimal.Zero,
		OrderStatus:     StatusPending,
		PaymentStatus:   PaymentUnpaid,
		DeliveryStatus:  DeliveryPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsCancelled verifica se o pedido foi cancelado. Cancelamento é terminal e
// nunca é sobrescrito pelo recálculo de status.
func (o *Order) IsCancelled() bool {
	return o.OrderStatus == StatusCancelled
}

// BalanceDue retorna o saldo devedor; negativo quando há pagamento a maior
func (o *Order) BalanceDue() decimal.Decimal {
	return o.TotalAmount.Sub(o.TotalPaidAmount)
}

// FormatInvoiceNo formata o número da fatura para exibição (INV-2025-0042)
func (o *Order) FormatInvoiceNo() string {
	return fmt.Sprintf("INV-%d-%04d", o.OrderDate.Year(), o.InvoiceNo)
}
