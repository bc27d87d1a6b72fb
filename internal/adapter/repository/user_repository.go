package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/firmdesk/firmdesk-backend/internal/domain/user"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
)

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db DB
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db DB) user.Repository {
	return &UserRepository{db: db}
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (
			id, firm_id, name, contact_no, email, password, role, bio, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.FirmID, u.Name, u.ContactNo, u.Email, u.Password, u.Role,
		u.Bio, u.Status, u.CreatedAt, u.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe um usuário com este email")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao criar usuário", err)
	}
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx,
		`SELECT id, firm_id, name, contact_no, email, password, role, bio, status,
			created_at, updated_at
		FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.FirmID, &u.Name, &u.ContactNo, &u.Email, &u.Password,
		&u.Role, &u.Bio, &u.Status, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("usuário não encontrado")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar usuário", err)
	}
	return &u, nil
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx,
		`SELECT id, firm_id, name, contact_no, email, password, role, bio, status,
			created_at, updated_at
		FROM users WHERE email = $1`,
		email).Scan(&u.ID, &u.FirmID, &u.Name, &u.ContactNo, &u.Email, &u.Password,
		&u.Role, &u.Bio, &u.Status, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("usuário não encontrado")
		}
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao buscar usuário", err)
	}
	return &u, nil
}

// FindByFirmID implementa user.Repository.FindByFirmID
func (r *UserRepository) FindByFirmID(ctx context.Context, firmID string, limit, offset int) ([]*user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, firm_id, name, contact_no, email, password, role, bio, status,
			created_at, updated_at
		FROM users
		WHERE firm_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		firmID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao listar usuários", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		var u user.User
		err := rows.Scan(&u.ID, &u.FirmID, &u.Name, &u.ContactNo, &u.Email,
			&u.Password, &u.Role, &u.Bio, &u.Status, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler usuário", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "erro ao ler resultados", err)
	}
	return users, nil
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE users SET
			name = $1, contact_no = $2, email = $3, password = $4, role = $5,
			bio = $6, status = $7, updated_at = $8
		WHERE id = $9`,
		u.Name, u.ContactNo, u.Email, u.Password, u.Role, u.Bio, u.Status,
		u.UpdatedAt, u.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return apperror.Conflict("já existe um usuário com este email")
		}
		return apperror.Wrap(apperror.KindInternal, "erro ao atualizar usuário", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("usuário não encontrado")
	}
	return nil
}
