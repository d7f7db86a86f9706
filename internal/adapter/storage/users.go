package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/easyup/storeapi/internal/core/domain"
	"github.com/easyup/storeapi/internal/core/port"
)

var _ port.UserDirectory = (*UsersRepository)(nil)

type UsersRepository struct {
	sqldb sqldb
}

func NewUsersRepository(sqldb sqldb) UsersRepository {
	return UsersRepository{sqldb}
}

func (r UsersRepository) UserByUsername(
	ctx context.Context, username string,
) (domain.User, error) {
	const op = "UsersRepository.UserByUsername"

	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT user_id, username FROM users WHERE username = $1;`

	var u domain.User
	err := r.sqldb.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}
