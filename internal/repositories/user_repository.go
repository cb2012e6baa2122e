package repositories

import (
	"context"
	"database/sql"

	"shop_backoffice/internal/models"
)

// UserRepository defines the credential store operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindActiveByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, id int64) error
	List(ctx context.Context, filters models.UserFilters) ([]models.User, int, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, phone, password_hash, name, role, avatar_url, is_active, last_login_at, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Phone, &u.PasswordHash, &u.Name, &u.Role, &u.AvatarURL,
		&u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (phone, password_hash, name, role, avatar_url, is_active)
	          VALUES ($1, $2, $3, $4, $5, TRUE)
	          RETURNING id, is_active, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Phone, user.PasswordHash, user.Name, user.Role, user.AvatarURL).
		Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return wrapError("creating user", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, wrapError("finding user by id", err)
	}
	return u, nil
}

func (r *userRepository) FindActiveByPhone(ctx context.Context, phone string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = $1 AND is_active = TRUE`, phone))
	if err != nil {
		return nil, wrapError("finding user by phone", err)
	}
	return u, nil
}

// Update writes every mutable column of user.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users
	          SET name = $2, role = $3, avatar_url = $4, is_active = $5, password_hash = $6, updated_at = NOW()
	          WHERE id = $1
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Role, user.AvatarURL, user.IsActive, user.PasswordHash).
		Scan(&user.UpdatedAt)
	if err != nil {
		return wrapError("updating user", err)
	}
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return wrapError("updating last login", err)
	}
	return requireOneRow("updating last login", res)
}

func (r *userRepository) List(ctx context.Context, filters models.UserFilters) ([]models.User, int, error) {
	var where whereBuilder
	if filters.Role != "" {
		where.add("role = $%d", filters.Role)
	}
	if filters.Search != "" {
		where.addSearch(filters.Search, "name", "phone")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where.clause(), where.args...).Scan(&total); err != nil {
		return nil, 0, wrapError("counting users", err)
	}

	suffix, args := where.page(filters.Limit, (filters.Page-1)*filters.Limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+where.clause()+` ORDER BY created_at DESC, id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrapError("listing users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, wrapError("scanning user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("iterating users", err)
	}
	return users, total, nil
}
