package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// OrderLineRepository implementa a interface order.LineRepository
type OrderLineRepository struct {
	db DB
}

// NewOrderLineRepository cria uma nova instância de OrderLineRepository
func NewOrderLineRepository(db DB) order.LineRepository {
	return &OrderLineRepository{db: db}
}

// Create implementa order.LineRepository.Create
func (r *OrderLineRepository) Create(ctx context.Context, l *order.Line) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO order_stocks (
			id, order_id, stock_id, quantity, selling_price, subtotal,
			quantity_delivered, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.OrderID, l.StockID, l.Quantity, l.SellingPrice, l.Subtotal,
		l.QuantityDelivered, l.CreatedAt, l.UpdatedAt)

	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao criar item do pedido", err)
	}
	return nil
}

// FindByID implementa order.LineRepository.FindByID
func (r *OrderLineRepository) FindByID(ctx context.Context, id string) (*order.Line, error) {
	var l order.Line
	err := r.db.QueryRow(ctx,
		`SELECT id, order_id, stock_id, quantity, selling_price, subtotal,
			quantity_delivered, created_at, updated_at
		FROM order_stocks WHERE id = $1`,
		id).Scan(
		&l.ID, &l.OrderID, &l.StockID, &l.Quantity, &l.SellingPrice, &l.Subtotal,
		&l.QuantityDelivered, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("item do pedido não encontrado")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar item do pedido", err)
	}
	return &l, nil
}

// FindByOrderID implementa order.LineRepository.FindByOrderID
func (r *OrderLineRepository) FindByOrderID(ctx context.Context, orderID string) ([]*order.Line, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, stock_id, quantity, selling_price, subtotal,
			quantity_delivered, created_at, updated_at
		FROM order_stocks
		WHERE order_id = $1
		ORDER BY created_at ASC`,
		orderID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao listar itens do pedido", err)
	}
	defer rows.Close()

	lines := make([]*order.Line, 0)
	for rows.Next() {
		var l order.Line
		err := rows.Scan(
			&l.ID, &l.OrderID, &l.StockID, &l.Quantity, &l.SellingPrice, &l.Subtotal,
			&l.QuantityDelivered, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler item do pedido", err)
		}
		lines = append(lines, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return lines, nil
}

// FindByOrderIDWithStock implementa order.LineRepository.FindByOrderIDWithStock
func (r *OrderLineRepository) FindByOrderIDWithStock(ctx context.Context, orderID string) ([]*order.Line, error) {
	rows, err := r.db.Query(ctx,
		`SELECT os.id, os.order_id, os.stock_id, os.quantity, os.selling_price,
			os.subtotal, os.quantity_delivered, os.created_at, os.updated_at,
			s.stock_name, s.unit
		FROM order_stocks os
		JOIN stocks s ON s.id = os.stock_id
		WHERE os.order_id = $1
		ORDER BY os.created_at ASC`,
		orderID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao listar itens do pedido", err)
	}
	defer rows.Close()

	lines := make([]*order.Line, 0)
	for rows.Next() {
		var l order.Line
		err := rows.Scan(
			&l.ID, &l.OrderID, &l.StockID, &l.Quantity, &l.SellingPrice, &l.Subtotal,
			&l.QuantityDelivered, &l.CreatedAt, &l.UpdatedAt,
			&l.StockName, &l.Unit)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler item do pedido", err)
		}
		lines = append(lines, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return lines, nil
}

// UpdateByID implementa order.LineRepository.UpdateByID. O chamador trava o
// pedido pai antes de chegar aqui, o que torna segura a leitura-modificação.
func (r *OrderLineRepository) UpdateByID(ctx context.Context, id string, patch order.LinePatch) (*order.Line, error) {
	l, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Quantity != nil || patch.SellingPrice != nil {
		if err := l.ApplyPatch(patch.Quantity, patch.SellingPrice); err != nil {
			return nil, apperror.Wrap(apperror.KindValidation, "dados do item inválidos", err)
		}
	}
	if patch.QuantityDelivered != nil {
		l.QuantityDelivered = *patch.QuantityDelivered
		l.UpdatedAt = time.Now()
	}

	_, err = r.db.Exec(ctx,
		`UPDATE order_stocks SET
			quantity = $1, selling_price = $2, subtotal = $3,
			quantity_delivered = $4, updated_at = $5
		WHERE id = $6`,
		l.Quantity, l.SellingPrice, l.Subtotal, l.QuantityDelivered, l.UpdatedAt, l.ID)

	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao atualizar item do pedido", err)
	}
	return l, nil
}

// RemoveByID implementa order.LineRepository.RemoveByID
func (r *OrderLineRepository) RemoveByID(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM order_stocks WHERE id = $1", id)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao remover item do pedido", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("item do pedido não encontrado")
	}
	return nil
}

// CalculateTotalAmount implementa order.LineRepository.CalculateTotalAmount
func (r *OrderLineRepository) CalculateTotalAmount(ctx context.Context, orderID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(subtotal), 0) FROM order_stocks WHERE order_id = $1",
		orderID).Scan(&total)
	if err != nil {
		return decimal.Zero, apperror.Wrap(apperror.KindInternal, "erro ao somar itens do pedido", err)
	}
	return total, nil
}
