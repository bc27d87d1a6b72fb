package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/internal/service/fulfillment"
)

// OrderItemRequest representa um item na criação do pedido
type OrderItemRequest struct {
	StockID      string          `json:"stock_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required,gt=0"`
	SellingPrice decimal.Decimal `json:"selling_price" binding:"gte=0"`
}

// OrderCreateRequest representa a requisição de criação de pedido
type OrderCreateRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	OrderDate  time.Time          `json:"order_date"`
	InvoiceNo  *int64             `json:"invoice_no"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderUpdateRequest representa a requisição de atualização do cabeçalho do pedido
type OrderUpdateRequest struct {
	OrderDate *time.Time `json:"order_date"`
	InvoiceNo *int64     `json:"invoice_no"`
}

// OrderItemUpdateRequest representa a requisição de alteração de um item
type OrderItemUpdateRequest struct {
	Quantity     *decimal.Decimal `json:"quantity"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
}

// OrderLineResponse representa um item do pedido na resposta da API
type OrderLineResponse struct {
	ID                string          `json:"id"`
	OrderID           string          `json:"order_id"`
	StockID           string          `json:"stock_id"`
	StockName         string          `json:"stock_name,omitempty"`
	Unit              string          `json:"unit,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	QuantityDelivered decimal.Decimal `json:"quantity_delivered"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
}

// OrderResponse representa a resposta com dados de um pedido
type OrderResponse struct {
	ID              string              `json:"id"`
	FirmID          string              `json:"firm_id"`
	CustomerID      string              `json:"customer_id"`
	CreatedBy       string              `json:"created_by"`
	OrderDate       time.Time           `json:"order_date"`
	InvoiceNo       int64               `json:"invoice_no"`
	Invoice         string              `json:"invoice"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	TotalPaidAmount decimal.Decimal     `json:"total_paid_amount"`
	BalanceDue      decimal.Decimal     `json:"balance_due"`
	OrderStatus     order.Status        `json:"order_status"`
	PaymentStatus   order.PaymentStatus `json:"payment_status"`
	DeliveryStatus  order.DeliveryStatus `json:"delivery_status"`
	Items           []OrderLineResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListResponse representa a resposta de listagem de pedidos
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Meta   ListMeta        `json:"meta"`
}

// ToOrderLineResponse converte um item do pedido para a resposta da API
func ToOrderLineResponse(l *order.Line) OrderLineResponse {
	return OrderLineResponse{
		ID:                l.ID,
		OrderID:           l.OrderID,
		StockID:           l.StockID,
		StockName:         l.StockName,
		Unit:              l.Unit,
		Quantity:          l.Quantity,
		SellingPrice:      l.SellingPrice,
		Subtotal:          l.Subtotal,
		QuantityDelivered: l.QuantityDelivered,
		QuantityRemaining: l.Remaining(),
	}
}

// ToOrderResponse converte um pedido do domínio para a resposta da API
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		FirmID:          o.FirmID,
		CustomerID:      o.CustomerID,
		CreatedBy:       o.CreatedBy,
		OrderDate:       o.OrderDate,
		InvoiceNo:       o.InvoiceNo,
		Invoice:         o.FormatInvoiceNo(),
		TotalAmount:     o.TotalAmount,
		TotalPaidAmount: o.TotalPaidAmount,
		BalanceDue:      o.BalanceDue(),
		OrderStatus:     o.OrderStatus,
		PaymentStatus:   o.PaymentStatus,
		DeliveryStatus:  o.DeliveryStatus,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderViewResponse converte o retorno padrão do orquestrador (pedido + itens)
func ToOrderViewResponse(view *fulfillment.OrderView) OrderResponse {
	resp := ToOrderResponse(view.Order)
	resp.Items = make([]OrderLineResponse, 0, len(view.Lines))
	for _, l := range view.Lines {
		resp.Items = append(resp.Items, ToOrderLineResponse(l))
	}
	return resp
}

// ToOrderListResponse converte uma lista de pedidos para a resposta da API
func ToOrderListResponse(orders []*order.Order, p Pagination, total int) OrderListResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToOrderResponse(o))
	}

	return OrderListResponse{
		Orders: responses,
		Meta:   NewListMeta(p, total),
	}
}
