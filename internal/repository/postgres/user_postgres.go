package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, name, email, password_hash, role, profile, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var (
		u       model.User
		profile []byte
	)
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&profile,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &u.Profile); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	profile, err := encodeJSON(u.Profile)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO users (id, name, email, password_hash, role, profile, created_at, updated_at)
		VALUES ($1, $2, lower($3), $4, $5, $6::jsonb, $7, $8)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		profile,
		u.CreatedAt,
		u.UpdatedAt,
	)
	out, err := scanUser(row)
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

// FindByID fetches a single user by its ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single user by email, ignoring case.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// Update writes name and profile.
func (r *UserPostgres) Update(ctx context.Context, u *model.User) (*model.User, error) {
	profile, err := encodeJSON(u.Profile)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE users SET name = $2, profile = $3::jsonb, updated_at = $4
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q, u.ID, u.Name, profile, u.UpdatedAt))
}

// List returns users matching q, newest first, with the total match count.
func (r *UserPostgres) List(ctx context.Context, q repository.UserQuery) (*repository.PageResult[model.User], error) {
	var w where
	if q.Search != "" {
		p := w.arg(likePattern(q.Search))
		w.add(fmt.Sprintf("(name ILIKE %s OR email ILIKE %s)", p, p))
	}
	if q.Role != "" {
		w.add("role = " + w.arg(q.Role))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	args := append(append([]any{}, w.args...), q.Page.Limit, q.Page.Offset)
	qList := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		userColumns, w.String(), len(w.args)+1, len(w.args)+2)
	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}

// Delete removes a user by ID. A missing row yields sql.ErrNoRows.
func (r *UserPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserPostgres) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
