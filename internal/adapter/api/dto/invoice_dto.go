package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
)

// InvoiceResponse representa a fatura montada de um pedido: emitente, cliente,
// itens e o resumo financeiro
type InvoiceResponse struct {
	Invoice        string              `json:"invoice"`
	InvoiceNo      int64               `json:"invoice_no"`
	OrderID        string              `json:"order_id"`
	OrderDate      time.Time           `json:"order_date"`
	OrderStatus    order.Status        `json:"order_status"`
	PaymentStatus  order.PaymentStatus `json:"payment_status"`
	DeliveryStatus order.DeliveryStatus `json:"delivery_status"`

	Firm     FirmResponse     `json:"firm"`
	Customer CustomerResponse `json:"customer"`

	Items []OrderLineResponse `json:"items"`

	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalPaid   decimal.Decimal    `json:"total_paid"`
	BalanceDue  decimal.Decimal    `json:"balance_due"`
	Payments    []PaymentResponse  `json:"payments"`
	Deliveries  []DeliveryResponse `json:"deliveries"`
}
