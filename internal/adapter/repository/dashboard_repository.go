package repository

import (
	"context"

	"github.com/firmdesk/firmdesk-backend/internal/domain/dashboard"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// DashboardRepository implementa a interface dashboard.Repository
type DashboardRepository struct {
	db DB
}

// NewDashboardRepository cria uma nova instância de DashboardRepository
func NewDashboardRepository(db DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

// Stats implementa dashboard.Repository.Stats
func (r *DashboardRepository) Stats(ctx context.Context, firmID string) (*dashboard.Stats, error) {
	var s dashboard.Stats

	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM customers WHERE firm_id = $1),
			(SELECT COUNT(*) FROM stocks WHERE firm_id = $1 AND is_active = true),
			(SELECT COUNT(*) FROM stocks
				WHERE firm_id = $1 AND is_active = true
					AND quantity_available <= low_unit_threshold),
			(SELECT COUNT(*) FROM orders WHERE firm_id = $1),
			(SELECT COUNT(*) FROM orders
				WHERE firm_id = $1 AND order_status != 'CANCELLED'
					AND delivery_status IN ('PENDING', 'PARTIALLY_DELIVERED')),
			(SELECT COUNT(*) FROM orders
				WHERE firm_id = $1 AND order_status != 'CANCELLED'
					AND payment_status IN ('UNPAID', 'PARTIALLY_PAID')),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders
				WHERE firm_id = $1 AND order_status != 'CANCELLED'),
			(SELECT COALESCE(SUM(total_paid_amount), 0) FROM orders
				WHERE firm_id = $1 AND order_status != 'CANCELLED')`,
		firmID).Scan(
		&s.TotalCustomers, &s.TotalStockItems, &s.LowStockItems, &s.TotalOrders,
		&s.PendingDeliveryCount, &s.PendingPaymentCount,
		&s.TotalRevenue, &s.TotalReceived)

	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao consultar indicadores do painel", err)
	}

	s.TotalOutstanding = s.TotalRevenue.Sub(s.TotalReceived)
	return &s, nil
}
