package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/firmdesk/firmdesk-backend/internal/domain/stock"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

const stockColumns = `id, firm_id, category_id, stock_name, sku_code, unit,
		quantity_available, buy_price, low_unit_threshold, weight_per_unit,
		weight_unit, is_active, created_at, updated_at`

// StockRepository implementa a interface stock.Repository
type StockRepository struct {
	db DB
}

// NewStockRepository cria uma nova instância de StockRepository
func NewStockRepository(db DB) stock.Repository {
	return &StockRepository{db: db}
}

// Create implementa stock.Repository.Create
func (r *StockRepository) Create(ctx context.Context, s *stock.Stock) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO stocks (
			id, firm_id, category_id, stock_name, sku_code, unit,
			quantity_available, buy_price, low_unit_threshold, weight_per_unit,
			weight_unit, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.ID, s.FirmID, s.CategoryID, s.Name, s.SkuCode, s.Unit,
		s.QuantityAvailable, s.BuyPrice, s.LowUnitThreshold, s.WeightPerUnit,
		s.WeightUnit, s.IsActive, s.CreatedAt, s.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe um item com este código SKU")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao criar item de estoque", err)
	}
	return nil
}

// FindByID implementa stock.Repository.FindByID
func (r *StockRepository) FindByID(ctx context.Context, id, firmID string) (*stock.Stock, error) {
	var s stock.Stock
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM stocks
			WHERE id = $1 AND firm_id = $2 AND is_active = true`, stockColumns),
		id, firmID).Scan(
		&s.ID, &s.FirmID, &s.CategoryID, &s.Name, &s.SkuCode, &s.Unit,
		&s.QuantityAvailable, &s.BuyPrice, &s.LowUnitThreshold, &s.WeightPerUnit,
		&s.WeightUnit, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("item de estoque não encontrado")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar item de estoque", err)
	}
	return &s, nil
}

// FindBySku implementa stock.Repository.FindBySku
func (r *StockRepository) FindBySku(ctx context.Context, sku, firmID string) (*stock.Stock, error) {
	var s stock.Stock
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM stocks
			WHERE sku_code = $1 AND firm_id = $2 AND is_active = true`, stockColumns),
		sku, firmID).Scan(
		&s.ID, &s.FirmID, &s.CategoryID, &s.Name, &s.SkuCode, &s.Unit,
		&s.QuantityAvailable, &s.BuyPrice, &s.LowUnitThreshold, &s.WeightPerUnit,
		&s.WeightUnit, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("item de estoque não encontrado")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar item de estoque", err)
	}
	return &s, nil
}

// List implementa stock.Repository.List
func (r *StockRepository) List(ctx context.Context, firmID string, filter stock.Filter, limit, offset int) ([]*stock.Stock, int, error) {
	where := "WHERE firm_id = $1 AND is_active = true"
	args := []any{firmID}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (stock_name ILIKE $%d OR sku_code ILIKE $%d)", len(args), len(args))
	}
	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		where += fmt.Sprintf(" AND created_at >= $%d::date", len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		where += fmt.Sprintf(" AND created_at < $%d::date + interval '1 day'", len(args))
	}

	var total int
	err := r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM stocks %s", where), args...).Scan(&total)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.KindInternal, "erro ao contar itens de estoque", err)
	}

	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM stocks %s
			ORDER BY stock_name ASC
			LIMIT $%d OFFSET $%d`, stockColumns, where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.KindInternal, "erro ao listar itens de estoque", err)
	}
	defer rows.Close()

	stocks, err := r.scanStockRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return stocks, total, nil
}

// FindLowStock implementa stock.Repository.FindLowStock
func (r *StockRepository) FindLowStock(ctx context.Context, firmID string) ([]*stock.Stock, error) {
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM stocks
			WHERE firm_id = $1 AND is_active = true
				AND quantity_available <= low_unit_threshold
			ORDER BY quantity_available ASC`, stockColumns),
		firmID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao listar estoque baixo", err)
	}
	defer rows.Close()

	return r.scanStockRows(rows)
}

// Update implementa stock.Repository.Update
func (r *StockRepository) Update(ctx context.Context, s *stock.Stock) error {
	s.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE stocks SET
			category_id = $1, stock_name = $2, sku_code = $3, unit = $4,
			buy_price = $5, low_unit_threshold = $6, weight_per_unit = $7,
			weight_unit = $8, updated_at = $9
		WHERE id = $10 AND firm_id = $11 AND is_active = true`,
		s.CategoryID, s.Name, s.SkuCode, s.Unit, s.BuyPrice, s.LowUnitThreshold,
		s.WeightPerUnit, s.WeightUnit, s.UpdatedAt, s.ID, s.FirmID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe um item com este código SKU")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao atualizar item de estoque", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("item de estoque não encontrado")
	}
	return nil
}

// AdjustQuantity implementa stock.Repository.AdjustQuantity. A restrição CHECK
// quantity_available >= 0 do banco é a última linha de defesa do invariante.
func (r *StockRepository) AdjustQuantity(ctx context.Context, id, firmID string, delta decimal.Decimal) (*stock.Stock, error) {
	var s stock.Stock
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`UPDATE stocks SET
			quantity_available = quantity_available + $1, updated_at = $2
		WHERE id = $3 AND firm_id = $4 AND is_active = true
		RETURNING %s`, stockColumns),
		delta, time.Now(), id, firmID).Scan(
		&s.ID, &s.FirmID, &s.CategoryID, &s.Name, &s.SkuCode, &s.Unit,
		&s.QuantityAvailable, &s.BuyPrice, &s.LowUnitThreshold, &s.WeightPerUnit,
		&s.WeightUnit, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("item de estoque não encontrado")
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return nil, apperror.New(apperror.KindInsufficientStock,
				"ajuste deixaria a quantidade disponível negativa")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ajustar quantidade do estoque", err)
	}
	return &s, nil
}

// QuantityAvailable implementa stock.Repository.QuantityAvailable
func (r *StockRepository) QuantityAvailable(ctx context.Context, id, firmID string) (decimal.Decimal, string, error) {
	var (
		available decimal.Decimal
		name      string
	)
	err := r.db.QueryRow(ctx,
		`SELECT quantity_available, stock_name FROM stocks
		WHERE id = $1 AND firm_id = $2 AND is_active = true
		FOR UPDATE`,
		id, firmID).Scan(&available, &name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, "", apperror.NotFound("item de estoque não encontrado")
		}
		return decimal.Zero, "", apperror.Wrap(apperror.KindInternal, "erro ao consultar quantidade disponível", err)
	}
	return available, name, nil
}

// SoftDelete implementa stock.Repository.SoftDelete
func (r *StockRepository) SoftDelete(ctx context.Context, id, firmID string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE stocks SET is_active = false, updated_at = $1
		WHERE id = $2 AND firm_id = $3 AND is_active = true`,
		time.Now(), id, firmID)

	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao desativar item de estoque", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("item de estoque não encontrado")
	}
	return nil
}

func (r *StockRepository) scanStockRows(rows pgx.Rows) ([]*stock.Stock, error) {
	stocks := make([]*stock.Stock, 0)

	for rows.Next() {
		var s stock.Stock
		err := rows.Scan(
			&s.ID, &s.FirmID, &s.CategoryID, &s.Name, &s.SkuCode, &s.Unit,
			&s.QuantityAvailable, &s.BuyPrice, &s.LowUnitThreshold, &s.WeightPerUnit,
			&s.WeightUnit, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler item de estoque", err)
		}
		stocks = append(stocks, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return stocks, nil
}
