package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/apperr"
)

// PostgreSQL error codes relevant to this schema.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// mapError translates storage-engine errors into the apperr taxonomy at the
// boundary. Everything without a specific kind is wrapped as a storage
// failure so callers never depend on driver error types.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", apperr.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %s", apperr.ErrDuplicateKey, pgErr.ConstraintName)
		case foreignKeyViolationCode:
			// Every FK in this schema points at users(id): a violation means
			// the owning user does not exist.
			return fmt.Errorf("%w: user referenced by %s", apperr.ErrNotFound, pgErr.ConstraintName)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperr.ErrPoolExhausted, err)
	}
	return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
}

// mapAcquireError classifies failures while waiting for a pooled session.
func mapAcquireError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperr.ErrPoolExhausted, err)
	}
	return fmt.Errorf("%w: %v", apperr.ErrStorage, err)
}

// rowsAffectedOrNotFound turns a zero-row UPDATE or DELETE into ErrNotFound.
func rowsAffectedOrNotFound(tag pgconn.CommandTag, entity string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, entity)
	}
	return nil
}
