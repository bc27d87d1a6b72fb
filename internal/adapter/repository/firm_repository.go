package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/firmdesk/firmdesk-backend/internal/domain/firm"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// FirmRepository implementa a interface firm.Repository
type FirmRepository struct {
	db DB
}

// NewFirmRepository cria uma nova instância de FirmRepository
func NewFirmRepository(db DB) firm.Repository {
	return &FirmRepository{db: db}
}

// Create implementa firm.Repository.Create
func (r *FirmRepository) Create(ctx context.Context, f *firm.Firm) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO firms (
			id, name, gst_no, city, street, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.Name, f.GstNo, f.City, f.Street, f.Status, f.CreatedAt, f.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe uma firma com este número fiscal")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao criar firma", err)
	}
	return nil
}

// FindByID implementa firm.Repository.FindByID
func (r *FirmRepository) FindByID(ctx context.Context, id string) (*firm.Firm, error) {
	var f firm.Firm
	err := r.db.QueryRow(ctx,
		`SELECT id, name, gst_no, city, street, status, created_at, updated_at
		FROM firms WHERE id = $1`,
		id).Scan(&f.ID, &f.Name, &f.GstNo, &f.City, &f.Street, &f.Status,
		&f.CreatedAt, &f.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("firma não encontrada")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar firma", err)
	}
	return &f, nil
}

// FindByGst implementa firm.Repository.FindByGst
func (r *FirmRepository) FindByGst(ctx context.Context, gstNo string) (*firm.Firm, error) {
	var f firm.Firm
	err := r.db.QueryRow(ctx,
		`SELECT id, name, gst_no, city, street, status, created_at, updated_at
		FROM firms WHERE gst_no = $1`,
		gstNo).Scan(&f.ID, &f.Name, &f.GstNo, &f.City, &f.Street, &f.Status,
		&f.CreatedAt, &f.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("firma não encontrada")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar firma", err)
	}
	return &f, nil
}

// Update implementa firm.Repository.Update
func (r *FirmRepository) Update(ctx context.Context, f *firm.Firm) error {
	f.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE firms SET
			name = $1, gst_no = $2, city = $3, street = $4, status = $5, updated_at = $6
		WHERE id = $7`,
		f.Name, f.GstNo, f.City, f.Street, f.Status, f.UpdatedAt, f.ID)

	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "erro ao atualizar firma", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("firma não encontrada")
	}
	return nil
}
