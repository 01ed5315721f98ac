package userrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const userColumns = `id, email, name, password_hash, balance, blocked, capabilities, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user domain.User
		caps []string
	)
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Balance, &user.Blocked, &caps, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	for _, c := range caps {
		user.Capabilities = append(user.Capabilities, domain.Capability(c))
	}
	return &user, nil
}

func (repo *Repository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return repo.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (repo *Repository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return repo.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// LockUser reads the user row FOR UPDATE; it must run inside a transaction.
func (repo *Repository) LockUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := repo.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	return user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	caps := make([]string, 0, len(user.Capabilities))
	for _, c := range user.Capabilities {
		caps = append(caps, string(c))
	}
	if len(caps) == 0 {
		caps = append(caps, string(domain.CapabilitySelf))
	}
	query := `
		INSERT INTO users (email, name, password_hash, capabilities)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash, caps).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) UpdateBalance(ctx context.Context, id int64, balance money.Money) error {
	_, err := repo.db.Exec(ctx, `UPDATE users SET balance = $1 WHERE id = $2`, balance, id)
	if err != nil {
		zap.L().Error("can't update user balance", zap.Int64("userID", id), zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) SetBlocked(ctx context.Context, id int64, blocked bool) (bool, error) {
	tag, err := repo.db.Exec(ctx, `UPDATE users SET blocked = $1 WHERE id = $2`, blocked, id)
	if err != nil {
		zap.L().Error("can't update user block flag", zap.Int64("userID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (repo *Repository) CreateAddress(ctx context.Context, addr *domain.Address) error {
	query := `
		INSERT INTO user_addresses (user_id, line, city, postal_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, addr.UserID, addr.Line, addr.City, addr.PostalCode).Scan(&addr.ID, &addr.CreatedAt)
	if err != nil {
		zap.L().Error("can't save address", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) FindAddress(ctx context.Context, id int64) (*domain.Address, error) {
	var addr domain.Address
	err := repo.db.QueryRow(ctx, `SELECT id, user_id, line, city, postal_code, created_at FROM user_addresses WHERE id = $1`, id).
		Scan(&addr.ID, &addr.UserID, &addr.Line, &addr.City, &addr.PostalCode, &addr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find address", zap.Error(err))
		return nil, err
	}
	return &addr, nil
}

func (repo *Repository) ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error) {
	rows, err := repo.db.Query(ctx, `SELECT id, user_id, line, city, postal_code, created_at FROM user_addresses WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		zap.L().Error("can't list addresses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var addrs []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Line, &a.City, &a.PostalCode, &a.CreatedAt); err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}
