package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firmdesk/firmdesk-backend/internal/domain/delivery"
	"github.com/firmdesk/firmdesk-backend/internal/domain/order"
	"github.com/firmdesk/firmdesk-backend/internal/domain/payment"
	"github.com/firmdesk/firmdesk-backend/internal/domain/stock"
	"github.com/firmdesk/firmdesk-backend/internal/service/fulfillment"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// DB abstrai o executor SQL; é satisfeita por *pgxpool.Pool e por pgx.Tx,
// permitindo que os mesmos repositórios rodem dentro ou fora de transação
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores agrupa os repositórios sobre um mesmo executor SQL
type Stores struct {
	db DB
}

// NewStores cria um agrupamento de repositórios sobre o executor informado
func NewStores(db DB) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Orders() order.Repository          { return NewOrderRepository(s.db) }
func (s *Stores) Lines() order.LineRepository       { return NewOrderLineRepository(s.db) }
func (s *Stores) Deliveries() delivery.Repository   { return NewDeliveryRepository(s.db) }
func (s *Stores) Payments() payment.Repository      { return NewPaymentRepository(s.db) }
func (s *Stores) Stocks() stock.Repository          { return NewStockRepository(s.db) }

// TxManager delimita transações sobre o pool pgx
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager cria um novo gerenciador de transações
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// InTx executa fn dentro de uma transação; qualquer erro desfaz todas as escritas
func (m *TxManager) InTx(ctx context.Context, fn func(ctx context.Context, st fulfillment.Stores) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao abrir transação", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, NewStores(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao confirmar transação", err)
	}
	return nil
}
