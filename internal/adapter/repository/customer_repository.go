package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/firmdesk/firmdesk-backend/internal/domain/customer"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db DB
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db DB) customer.Repository {
	return &CustomerRepository{db: db}
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO customers (
			id, firm_id, name, firm_name, contact_no, gst_no, city, street,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.FirmID, c.Name, c.FirmName, c.ContactNo, c.GstNo, c.City,
		c.Street, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao criar cliente", err)
	}
	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id, firmID string) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.QueryRow(ctx,
		`SELECT id, firm_id, name, firm_name, contact_no, gst_no, city, street,
			created_at, updated_at
		FROM customers WHERE id = $1 AND firm_id = $2`,
		id, firmID).Scan(&c.ID, &c.FirmID, &c.Name, &c.FirmName, &c.ContactNo,
		&c.GstNo, &c.City, &c.Street, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("cliente não encontrado")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar cliente", err)
	}
	return &c, nil
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, firmID string, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, firm_id, name, firm_name, contact_no, gst_no, city, street,
			created_at, updated_at
		FROM customers
		WHERE firm_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		firmID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao listar clientes", err)
	}
	defer rows.Close()

	return r.scanCustomerRows(rows)
}

// FindByName implementa customer.Repository.FindByName
func (r *CustomerRepository) FindByName(ctx context.Context, firmID, name string, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, firm_id, name, firm_name, contact_no, gst_no, city, street,
			created_at, updated_at
		FROM customers
		WHERE firm_id = $1 AND (name ILIKE $2 OR firm_name ILIKE $2)
		ORDER BY name ASC
		LIMIT $3 OFFSET $4`,
		firmID, "%"+name+"%", limit, offset)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar clientes", err)
	}
	defer rows.Close()

	return r.scanCustomerRows(rows)
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE customers SET
			name = $1, firm_name = $2, contact_no = $3, gst_no = $4, city = $5,
			street = $6, updated_at = $7
		WHERE id = $8 AND firm_id = $9`,
		c.Name, c.FirmName, c.ContactNo, c.GstNo, c.City, c.Street,
		c.UpdatedAt, c.ID, c.FirmID)

	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao atualizar cliente", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("cliente não encontrado")
	}
	return nil
}

// CountByFirm implementa customer.Repository.CountByFirm
func (r *CustomerRepository) CountByFirm(ctx context.Context, firmID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM customers WHERE firm_id = $1",
		firmID).Scan(&count)

	if err != nil {
		return 0, apperror.Wrap(apperror.KindInternal, "erro ao contar clientes", err)
	}
	return count, nil
}

func (r *CustomerRepository) scanCustomerRows(rows pgx.Rows) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, 0)

	for rows.Next() {
		var c customer.Customer
		err := rows.Scan(&c.ID, &c.FirmID, &c.Name, &c.FirmName, &c.ContactNo,
			&c.GstNo, &c.City, &c.Street, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler cliente", err)
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return customers, nil
}
