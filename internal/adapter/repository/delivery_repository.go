package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/delivery"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// DeliveryRepository implementa a interface delivery.Repository
type DeliveryRepository struct {
	db DB
}

// NewDeliveryRepository cria uma nova instância de DeliveryRepository
func NewDeliveryRepository(db DB) delivery.Repository {
	return &DeliveryRepository{db: db}
}

// Create implementa delivery.Repository.Create
func (r *DeliveryRepository) Create(ctx context.Context, d *delivery.Delivery) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO deliveries (
			id, order_stock_id, firm_id, delivered_quantity, delivery_date,
			delivery_notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.OrderStockID, d.FirmID, d.DeliveredQuantity, d.DeliveryDate,
		d.DeliveryNotes, d.CreatedAt)

	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao registrar entrega", err)
	}
	return nil
}

// FindByID implementa delivery.Repository.FindByID
func (r *DeliveryRepository) FindByID(ctx context.Context, id, firmID string) (*delivery.Delivery, error) {
	var d delivery.Delivery
	err := r.db.QueryRow(ctx,
		`SELECT id, order_stock_id, firm_id, delivered_quantity, delivery_date,
			delivery_notes, created_at
		FROM deliveries WHERE id = $1 AND firm_id = $2`,
		id, firmID).Scan(
		&d.ID, &d.OrderStockID, &d.FirmID, &d.DeliveredQuantity, &d.DeliveryDate,
		&d.DeliveryNotes, &d.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("entrega não encontrada")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar entrega", err)
	}
	return &d, nil
}

// FindByOrderID implementa delivery.Repository.FindByOrderID
func (r *DeliveryRepository) FindByOrderID(ctx context.Context, orderID string) ([]*delivery.Delivery, error) {
	rows, err := r.db.Query(ctx,
		`SELECT d.id, d.order_stock_id, d.firm_id, d.delivered_quantity,
			d.delivery_date, d.delivery_notes, d.created_at,
			os.stock_id, s.stock_name
		FROM deliveries d
		JOIN order_stocks os ON os.id = d.order_stock_id
		JOIN stocks s ON s.id = os.stock_id
		WHERE os.order_id = $1
		ORDER BY d.delivery_date ASC, d.created_at ASC`,
		orderID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao listar entregas", err)
	}
	defer rows.Close()

	deliveries := make([]*delivery.Delivery, 0)
	for rows.Next() {
		var d delivery.Delivery
		err := rows.Scan(
			&d.ID, &d.OrderStockID, &d.FirmID, &d.DeliveredQuantity,
			&d.DeliveryDate, &d.DeliveryNotes, &d.CreatedAt,
			&d.StockID, &d.StockName)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler entrega", err)
		}
		deliveries = append(deliveries, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return deliveries, nil
}

// UpdateByID implementa delivery.Repository.UpdateByID
func (r *DeliveryRepository) UpdateByID(ctx context.Context, id string, patch delivery.Patch) error {
	result, err := r.db.Exec(ctx,
		`UPDATE deliveries SET
			delivered_quantity = COALESCE($1, delivered_quantity),
			delivery_date = COALESCE($2, delivery_date),
			delivery_notes = COALESCE($3, delivery_notes)
		WHERE id = $4`,
		patch.DeliveredQuantity, patch.DeliveryDate, patch.DeliveryNotes, id)

	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao atualizar entrega", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("entrega não encontrada")
	}
	return nil
}

// RemoveByID implementa delivery.Repository.RemoveByID
func (r *DeliveryRepository) RemoveByID(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM deliveries WHERE id = $1", id)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao remover entrega", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("entrega não encontrada")
	}
	return nil
}

// RemoveByLineID implementa delivery.Repository.RemoveByLineID
func (r *DeliveryRepository) RemoveByLineID(ctx context.Context, lineID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM deliveries WHERE order_stock_id = $1", lineID)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao remover entregas do item", err)
	}
	return nil
}

// CalculateTotalDelivered implementa delivery.Repository.CalculateTotalDelivered
func (r *DeliveryRepository) CalculateTotalDelivered(ctx context.Context, lineID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(delivered_quantity), 0) FROM deliveries WHERE order_stock_id = $1",
		lineID).Scan(&total)
	if err != nil {
		return decimal.Zero, apperror.Wrap(apperror.KindInternal, "erro ao somar entregas do item", err)
	}
	return total, nil
}
