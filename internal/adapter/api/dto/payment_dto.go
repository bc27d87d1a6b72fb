package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/payment"
)

// PaymentRequest representa a requisição de registro de pagamento
type PaymentRequest struct {
	AmountPaid    decimal.Decimal `json:"amount_paid" binding:"required,gt=0"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Remarks       string          `json:"remarks"`
	PaymentDate   time.Time       `json:"payment_date"`
}

// PaymentUpdateRequest representa a requisição de correção de um pagamento
type PaymentUpdateRequest struct {
	AmountPaid    *decimal.Decimal `json:"amount_paid"`
	PaymentMethod *string          `json:"payment_method"`
	Remarks       *string          `json:"remarks"`
	PaymentDate   *time.Time       `json:"payment_date"`
}

// PaymentResponse representa a resposta com dados de um pagamento
type PaymentResponse struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	FirmID        string          `json:"firm_id"`
	CustomerID    string          `json:"customer_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentMethod string          `json:"payment_method"`
	ReferenceNo   string          `json:"reference_no"`
	Remarks       string          `json:"remarks"`
	PaymentDate   time.Time       `json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToPaymentResponse converte um pagamento do domínio para a resposta da API
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		FirmID:        p.FirmID,
		CustomerID:    p.CustomerID,
		AmountPaid:    p.AmountPaid,
		PaymentMethod: p.PaymentMethod,
		ReferenceNo:   p.ReferenceNo,
		Remarks:       p.Remarks,
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPaymentListResponse converte uma lista de pagamentos para a resposta da API
func ToPaymentListResponse(payments []*payment.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, ToPaymentResponse(p))
	}
	return responses
}
