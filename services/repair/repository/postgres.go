package repository

import (
	"errors"

	"github.com/jackc/pgconn"
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether the error is a postgres unique
// constraint violation, so callers can surface it as a conflict.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
