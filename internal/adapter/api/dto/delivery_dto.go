package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/delivery"
)

// DeliveryRequest representa a requisição de registro de entrega parcial
type DeliveryRequest struct {
	DeliveredQuantity decimal.Decimal `json:"delivered_quantity" binding:"required,gt=0"`
	DeliveryDate      time.Time       `json:"delivery_date"`
	DeliveryNotes     string          `json:"delivery_notes"`
}

// DeliveryUpdateRequest representa a requisição de correção de uma entrega
type DeliveryUpdateRequest struct {
	DeliveredQuantity *decimal.Decimal `json:"delivered_quantity"`
	DeliveryDate      *time.Time       `json:"delivery_date"`
	DeliveryNotes     *string          `json:"delivery_notes"`
}

// DeliverFullRequest representa a requisição de entrega total do pedido
type DeliverFullRequest struct {
	DeliveryDate  time.Time `json:"delivery_date"`
	DeliveryNotes string    `json:"delivery_notes"`
}

// DeliveryResponse representa a resposta com dados de uma entrega
type DeliveryResponse struct {
	ID                string          `json:"id"`
	OrderStockID      string          `json:"order_stock_id"`
	FirmID            string          `json:"firm_id"`
	StockID           string          `json:"stock_id,omitempty"`
	StockName         string          `json:"stock_name,omitempty"`
	DeliveredQuantity decimal.Decimal `json:"delivered_quantity"`
	DeliveryDate      time.Time       `json:"delivery_date"`
	DeliveryNotes     string          `json:"delivery_notes"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToDeliveryResponse converte uma entrega do domínio para a resposta da API
func ToDeliveryResponse(d *delivery.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:                d.ID,
		OrderStockID:      d.OrderStockID,
		FirmID:            d.FirmID,
		StockID:           d.StockID,
		StockName:         d.StockName,
		DeliveredQuantity: d.DeliveredQuantity,
		DeliveryDate:      d.DeliveryDate,
		DeliveryNotes:     d.DeliveryNotes,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDeliveryListResponse converte uma lista de entregas para a resposta da API
func ToDeliveryListResponse(deliveries []*delivery.Delivery) []DeliveryResponse {
	responses := make([]DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		responses = append(responses, ToDeliveryResponse(d))
	}
	return responses
}
