package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/starwars-blog/internal/model"
	"github.com/deppfellow/starwars-blog/internal/server"
	"github.com/deppfellow/starwars-blog/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, username, password_hash, first_name, last_name, is_active, created_at, updated_at`

// UsersRepository performs database operations on user accounts.
type UsersRepository struct {
	s *server.Server
}

// NewUsersRepository constructs a UsersRepository using the server's pool.
func NewUsersRepository(s *server.Server) *UsersRepository {
	return &UsersRepository{s: s}
}

// CreateUserParams carries the fields required to create a user.
type CreateUserParams struct {
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
}

// UpdateUserParams carries the mutable account fields.
type UpdateUserParams struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	IsActive  bool
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. A duplicate email or username surfaces as a
// unique-violation application error from the database constraint.
func (r *UsersRepository) Create(ctx context.Context, params CreateUserParams) (*model.User, error) {
	query := `
		INSERT INTO users (email, username, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := scanUser(r.s.DB.Pool.QueryRow(ctx, query,
		params.Email, params.Username, params.PasswordHash,
		params.FirstName, params.LastName,
	))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:users: %w", err))
	}
	return user, nil
}

// GetByID fetches a user by primary key.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.s.DB.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:users: %w", err))
	}
	return user, nil
}

// GetByEmail fetches a user by its unique email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.s.DB.Pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:users: %w", err))
	}
	return user, nil
}

// GetByUsername fetches a user by its unique username.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.s.DB.Pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:users: %w", err))
	}
	return user, nil
}

// List returns all users ordered by id.
func (r *UsersRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.s.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return users, nil
}

// Update replaces the mutable account fields and refreshes updated_at.
func (r *UsersRepository) Update(ctx context.Context, id int64, params UpdateUserParams) (*model.User, error) {
	query := `
		UPDATE users
		SET email = $2, username = $3, first_name = $4, last_name = $5,
		    is_active = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.s.DB.Pool.QueryRow(ctx, query,
		id, params.Email, params.Username,
		params.FirstName, params.LastName, params.IsActive,
	))
	if err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("table:users: %w", err))
	}
	return user, nil
}

// Delete removes a user. The favorite junction rows cascade away with it;
// the user's blog posts survive with their author reference cleared.
func (r *UsersRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.DB.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.HandleError(fmt.Errorf("table:users: %w", pgx.ErrNoRows))
	}
	return nil
}
