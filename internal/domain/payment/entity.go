package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount = errors.New("valor pago deve ser maior que zero")
	ErrEmptyMethod       = errors.New("forma de pagamento não pode ser vazia")
)

// Payment representa um pagamento parcial registrado contra um pedido.
// A soma dos pagamentos de um pedido é o total_paid_amount; pagamento a
// maior é permitido e aparece como saldo devedor negativo.
type Payment struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	FirmID        string          `json:"firm_id"`
	CustomerID    string          `json:"customer_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentMethod string          `json:"payment_method"`
	ReferenceNo   string          `json:"reference_no"` // Único, gerado pelo sistema
	Remarks       string          `json:"remarks"`
	PaymentDate   time.Time       `json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewPayment cria um novo registro de pagamento com referência única
func NewPayment(orderID, firmID, customerID string, amountPaid decimal.Decimal, method, remarks string, paymentDate time.Time) (*Payment, error) {
	if !amountPaid.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if method == "" {
		return nil, ErrEmptyMethod
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		ID:            uuid.New().String(),
		OrderID:       orderID,
		FirmID:        firmID,
		CustomerID:    customerID,
		AmountPaid:    amountPaid,
		PaymentMethod: method,
		ReferenceNo:   GenerateReferenceNo(),
		Remarks:       remarks,
		PaymentDate:   paymentDate,
		CreatedAt:     time.Now(),
	}, nil
}

// GenerateReferenceNo gera um número de referência globalmente único
func GenerateReferenceNo() string {
	return fmt.Sprintf("PAY-%s", uuid.New().String())
}
