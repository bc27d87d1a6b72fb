package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/payment"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// PaymentRepository implementa a interface payment.Repository
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository cria uma nova instância de PaymentRepository
func NewPaymentRepository(db DB) payment.Repository {
	return &PaymentRepository{db: db}
}

// Create implementa payment.Repository.Create
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payments (
			id, order_id, firm_id, customer_id, amount_paid, payment_method,
			reference_no, remarks, payment_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.OrderID, p.FirmID, p.CustomerID, p.AmountPaid, p.PaymentMethod,
		p.ReferenceNo, p.Remarks, p.PaymentDate, p.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe um pagamento com esta referência")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao registrar pagamento", err)
	}
	return nil
}

// FindByID implementa payment.Repository.FindByID
func (r *PaymentRepository) FindByID(ctx context.Context, id, firmID string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.QueryRow(ctx,
		`SELECT id, order_id, firm_id, customer_id, amount_paid, payment_method,
			reference_no, remarks, payment_date, created_at
		FROM payments WHERE id = $1 AND firm_id = $2`,
		id, firmID).Scan(
		&p.ID, &p.OrderID, &p.FirmID, &p.CustomerID, &p.AmountPaid, &p.PaymentMethod,
		&p.ReferenceNo, &p.Remarks, &p.PaymentDate, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("pagamento não encontrado")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar pagamento", err)
	}
	return &p, nil
}

// FindByOrderID implementa payment.Repository.FindByOrderID
func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) ([]*payment.Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, firm_id, customer_id, amount_paid, payment_method,
			reference_no, remarks, payment_date, created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY payment_date ASC, created_at ASC`,
		orderID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao listar pagamentos", err)
	}
	defer rows.Close()

	payments := make([]*payment.Payment, 0)
	for rows.Next() {
		var p payment.Payment
		err := rows.Scan(
			&p.ID, &p.OrderID, &p.FirmID, &p.CustomerID, &p.AmountPaid, &p.PaymentMethod,
			&p.ReferenceNo, &p.Remarks, &p.PaymentDate, &p.CreatedAt)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler pagamento", err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return payments, nil
}

// UpdateByID implementa payment.Repository.UpdateByID
func (r *PaymentRepository) UpdateByID(ctx context.Context, id string, patch payment.Patch) error {
	result, err := r.db.Exec(ctx,
		`UPDATE payments SET
			amount_paid = COALESCE($1, amount_paid),
			payment_method = COALESCE($2, payment_method),
			remarks = COALESCE($3, remarks),
			payment_date = COALESCE($4, payment_date)
		WHERE id = $5`,
		patch.AmountPaid, patch.PaymentMethod, patch.Remarks, patch.PaymentDate, id)

	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao atualizar pagamento", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("pagamento não encontrado")
	}
	return nil
}

// RemoveByID implementa payment.Repository.RemoveByID
func (r *PaymentRepository) RemoveByID(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao remover pagamento", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("pagamento não encontrado")
	}
	return nil
}

// CalculateTotalPaid implementa payment.Repository.CalculateTotalPaid
func (r *PaymentRepository) CalculateTotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE order_id = $1",
		orderID).Scan(&total)
	if err != nil {
		return decimal.Zero, apperror.Wrap(apperror.KindInternal, "erro ao somar pagamentos do pedido", err)
	}
	return total, nil
}
