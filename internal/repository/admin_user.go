package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hashforge/site-server-go/internal/model"
)

// ErrUsernameTaken is returned when an insert or update collides with the
// unique constraint on admin_users.username.
var ErrUsernameTaken = errors.New("username already taken")

type AdminUserRepository interface {
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	FindAll(ctx context.Context) ([]model.AdminUser, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error)
	Update(ctx context.Context, id string, params model.UpdateAdminUserParams) (*model.AdminUser, error)
	Delete(ctx context.Context, id string) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) AdminUserRepository
}

type adminUserRepo struct {
	db queryer
}

func NewAdminUserRepository(db *sqlx.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) WithTx(tx *sqlx.Tx) AdminUserRepository {
	return &adminUserRepo{db: tx}
}

func (r *adminUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM admin_users WHERE id = $1
	`, id)
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM admin_users WHERE username = $1
	`, username)
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) FindAll(ctx context.Context) ([]model.AdminUser, error) {
	users := []model.AdminUser{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM admin_users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *adminUserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_users`)
	return count, err
}

func (r *adminUserRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING *
	`, params.Username, params.PasswordHash)
	if isUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepo) Update(ctx context.Context, id string, params model.UpdateAdminUserParams) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		UPDATE admin_users SET
			username = COALESCE($2, username),
			password_hash = COALESCE($3, password_hash)
		WHERE id = $1
		RETURNING *
	`, id, params.Username, params.PasswordHash)
	if isUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
