package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"context"

	"github.com/jackc/pgx/v5"

	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

const orderColumns = `id, firm_id, customer_id, created_by, order_date, invoice_no,
		total_amount, total_paid_amount, order_status, payment_status, delivery_status,
		created_at, updated_at`

// OrderRepository implementa a interface order.Repository
type OrderRepository struct {
	db DB
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db DB) order.Repository {
	return &OrderRepository{db: db}
}

// Create implementa order.Repository.Create
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO orders (
			id, firm_id, customer_id, created_by, order_date, invoice_no,
			total_amount, total_paid_amount, order_status, payment_status,
			delivery_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.FirmID, o.CustomerID, o.CreatedBy, o.OrderDate, o.InvoiceNo,
		o.TotalAmount, o.TotalPaidAmount, o.OrderStatus, o.PaymentStatus,
		o.DeliveryStatus, o.CreatedAt, o.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe um pedido com este número de fatura")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao criar pedido", err)
	}
	return nil
}

func (r *OrderRepository) findByID(ctx context.Context, id, firmID, suffix string) (*order.Order, error) {
	var o order.Order
	err := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM orders WHERE id = $1 AND firm_id = $2%s", orderColumns, suffix),
		id, firmID).Scan(
		&o.ID, &o.FirmID, &o.CustomerID, &o.CreatedBy, &o.OrderDate, &o.InvoiceNo,
		&o.TotalAmount, &o.TotalPaidAmount, &o.OrderStatus, &o.PaymentStatus,
		&o.DeliveryStatus, &o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("pedido não encontrado")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar pedido", err)
	}
	return &o, nil
}

// FindByID implementa order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, id, firmID string) (*order.Order, error) {
	return r.findByID(ctx, id, firmID, "")
}

// FindByIDForUpdate implementa order.Repository.FindByIDForUpdate
func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id, firmID string) (*order.Order, error) {
	return r.findByID(ctx, id, firmID, " FOR UPDATE")
}

// LatestInvoiceNo implementa order.Repository.LatestInvoiceNo. Trava a linha da
// firma para serializar a numeração de faturas entre transações concorrentes.
func (r *OrderRepository) LatestInvoiceNo(ctx context.Context, firmID string) (int64, error) {
	var firmExists string
	err := r.db.QueryRow(ctx,
		"SELECT id FROM firms WHERE id = $1 FOR UPDATE", firmID).Scan(&firmExists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NotFound("firma não encontrada")
		}
		return 0, apperror.Wrap(apperror.KindInternal, "erro ao travar numeração da firma", err)
	}

	var latest int64
	err = r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(invoice_no), 0) FROM orders WHERE firm_id = $1",
		firmID).Scan(&latest)
	if err != nil {
		return 0, apperror.Wrap(apperror.KindInternal, "erro ao buscar número de fatura", err)
	}
	return latest, nil
}

// List implementa order.Repository.List
func (r *OrderRepository) List(ctx context.Context, firmID string, filter order.Filter, limit, offset int) ([]*order.Order, int, error) {
	where := "WHERE firm_id = $1"
	args := []any{firmID}

	if filter.OrderStatus != "" {
		args = append(args, filter.OrderStatus)
		where += fmt.Sprintf(" AND order_status = $%d", len(args))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		where += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	if filter.DeliveryStatus != "" {
		args = append(args, filter.DeliveryStatus)
		where += fmt.Sprintf(" AND delivery_status = $%d", len(args))
	}

	var total int
	err := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM orders %s", where), args...).Scan(&total)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.KindInternal, "erro ao contar pedidos", err)
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM orders %s
			ORDER BY order_date DESC, created_at DESC
			LIMIT $%d OFFSET $%d`, orderColumns, where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.KindInternal, "erro ao listar pedidos", err)
	}
	defer rows.Close()

	orders, err := r.scanOrderRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListPendingDelivery implementa order.Repository.ListPendingDelivery
func (r *OrderRepository) ListPendingDelivery(ctx context.Context, firmID string, limit, offset int) ([]*order.Order, int, error) {
	return r.listByCondition(ctx, firmID,
		"order_status != 'CANCELLED' AND delivery_status IN ('PENDING', 'PARTIALLY_DELIVERED')",
		limit, offset)
}

// ListPendingPayment implementa order.Repository.ListPendingPayment
func (r *OrderRepository) ListPendingPayment(ctx context.Context, firmID string, limit, offset int) ([]*order.Order, int, error) {
	return r.listByCondition(ctx, firmID,
		"order_status != 'CANCELLED' AND payment_status IN ('UNPAID', 'PARTIALLY_PAID')",
		limit, offset)
}

func (r *OrderRepository) listByCondition(ctx context.Context, firmID, condition string, limit, offset int) ([]*order.Order, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM orders WHERE firm_id = $1 AND %s", condition),
		firmID).Scan(&total)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.KindInternal, "erro ao contar pedidos", err)
	}

	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM orders
			WHERE firm_id = $1 AND %s
			ORDER BY order_date ASC, created_at ASC
			LIMIT $2 OFFSET $3`, orderColumns, condition),
		firmID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.KindInternal, "erro ao listar pedidos", err)
	}
	defer rows.Close()

	orders, err := r.scanOrderRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateByID implementa order.Repository.UpdateByID
func (r *OrderRepository) UpdateByID(ctx context.Context, id, firmID string, patch order.StatusPatch) (*order.Order, error) {
	o, err := r.FindByID(ctx, id, firmID)
	if err != nil {
		return nil, err
	}

	if patch.TotalAmount != nil {
		o.TotalAmount = *patch.TotalAmount
	}
	if patch.TotalPaidAmount != nil {
		o.TotalPaidAmount = *patch.TotalPaidAmount
	}
	if patch.OrderStatus != nil {
		o.OrderStatus = *patch.OrderStatus
	}
	if patch.PaymentStatus != nil {
		o.PaymentStatus = *patch.PaymentStatus
	}
	if patch.DeliveryStatus != nil {
		o.DeliveryStatus = *patch.DeliveryStatus
	}
	if patch.OrderDate != nil {
		o.OrderDate = *patch.OrderDate
	}
	if patch.InvoiceNo != nil {
		o.InvoiceNo = *patch.InvoiceNo
	}
	o.UpdatedAt = time.Now()

	_, err = r.db.Exec(ctx,
		`UPDATE orders SET
			order_date = $1, invoice_no = $2, total_amount = $3,
			total_paid_amount = $4, order_status = $5, payment_status = $6,
			delivery_status = $7, updated_at = $8
		WHERE id = $9 AND firm_id = $10`,
		o.OrderDate, o.InvoiceNo, o.TotalAmount, o.TotalPaidAmount,
		o.OrderStatus, o.PaymentStatus, o.DeliveryStatus, o.UpdatedAt,
		o.ID, o.FirmID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, apperror.Conflict("já existe um pedido com este número de fatura")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao atualizar pedido", err)
	}
	return o, nil
}

func (r *OrderRepository) scanOrderRows(rows pgx.Rows) ([]*order.Order, error) {
	orders := make([]*order.Order, 0)

	for rows.Next() {
		var o order.Order
		err := rows.Scan(
			&o.ID, &o.FirmID, &o.CustomerID, &o.CreatedBy, &o.OrderDate, &o.InvoiceNo,
			&o.TotalAmount, &o.TotalPaidAmount, &o.OrderStatus, &o.PaymentStatus,
			&o.DeliveryStatus, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler pedido", err)
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return orders, nil
}
