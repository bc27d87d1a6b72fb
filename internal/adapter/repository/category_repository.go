package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/firmdesk/firmdesk-backend/internal/domain/category"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// CategoryRepository implementa a interface category.Repository
type CategoryRepository struct {
	db DB
}

// NewCategoryRepository cria uma nova instância de CategoryRepository
func NewCategoryRepository(db DB) category.Repository {
	return &CategoryRepository{db: db}
}

// Create implementa category.Repository.Create
func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (
			id, firm_id, name, description, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.FirmID, c.Name, c.Description, c.CreatedBy, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe uma categoria com este nome")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao criar categoria", err)
	}
	return nil
}

// FindByID implementa category.Repository.FindByID
func (r *CategoryRepository) FindByID(ctx context.Context, id, firmID string) (*category.Category, error) {
	var c category.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, firm_id, name, description, created_by, created_at, updated_at
		FROM categories WHERE id = $1 AND firm_id = $2`,
		id, firmID).Scan(&c.ID, &c.FirmID, &c.Name, &c.Description, &c.CreatedBy,
		&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("categoria não encontrada")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar categoria", err)
	}
	return &c, nil
}

// FindByFirmID implementa category.Repository.FindByFirmID
func (r *CategoryRepository) FindByFirmID(ctx context.Context, firmID string) ([]*category.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, firm_id, name, description, created_by, created_at, updated_at
		FROM categories
		WHERE firm_id = $1
		ORDER BY name ASC`,
		firmID)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao listar categorias", err)
	}
	defer rows.Close()

	categories := make([]*category.Category, 0)
	for rows.Next() {
		var c category.Category
		err := rows.Scan(&c.ID, &c.FirmID, &c.Name, &c.Description, &c.CreatedBy,
			&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler categoria", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return categories, nil
}

// Update implementa category.Repository.Update
func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	c.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND firm_id = $5`,
		c.Name, c.Description, c.UpdatedAt, c.ID, c.FirmID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe uma categoria com este nome")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao atualizar categoria", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("categoria não encontrada")
	}
	return nil
}

// Delete implementa category.Repository.Delete
func (r *CategoryRepository) Delete(ctx context.Context, id, firmID string) error {
	result, err := r.db.Exec(ctx,
		"DELETE FROM categories WHERE id = $1 AND firm_id = $2", id, firmID)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return apperror.Conflict("categoria possui itens de estoque vinculados")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao excluir categoria", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("categoria não encontrada")
	}
	return nil
}
