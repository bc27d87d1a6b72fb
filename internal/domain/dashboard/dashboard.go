package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
)

// Stats agrega os indicadores do painel de uma firma. Receita e recebimentos
// consideram apenas pedidos não cancelados.
type Stats struct {
	TotalCustomers       int             `json:"total_customers"`
	TotalStockItems      int             `json:"total_stock_items"`
	LowStockItems        int             `json:"low_stock_items"`
	TotalOrders          int             `json:"total_orders"`
	PendingDeliveryCount int             `json:"pending_delivery_count"`
	PendingPaymentCount  int             `json:"pending_payment_count"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalReceived        decimal.Decimal `json:"total_received"`
	TotalOutstanding     decimal.Decimal `json:"total_outstanding"`
}

// Repository define a interface de consulta dos indicadores do painel
type Repository interface {
	// Stats retorna os indicadores consolidados da firma
	Stats(ctx context.Context, firmID string) (*Stats, error)
}
