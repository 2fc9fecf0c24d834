package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/apperr"
)

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, mapError(nil))
}

func TestMapErrorNoRows(t *testing.T) {
	err := mapError(pgx.ErrNoRows)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMapErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"}
	err := mapError(fmt.Errorf("insert: %w", pgErr))
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "users_email_key")
}

func TestMapErrorForeignKeyViolationIsNotFound(t *testing.T) {
	pgErr := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "accounts_user_id_fkey"}
	err := mapError(pgErr)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMapErrorDeadlineIsPoolExhausted(t *testing.T) {
	err := mapError(context.DeadlineExceeded)
	assert.ErrorIs(t, err, apperr.ErrPoolExhausted)
}

func TestMapErrorFallbackIsStorage(t *testing.T) {
	err := mapError(errors.New("broken pipe"))
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

func TestMapAcquireError(t *testing.T) {
	assert.NoError(t, mapAcquireError(nil))
	assert.ErrorIs(t, mapAcquireError(context.DeadlineExceeded), apperr.ErrPoolExhausted)
	assert.ErrorIs(t, mapAcquireError(errors.New("pool closed")), apperr.ErrStorage)
}

func TestRowsAffectedOrNotFound(t *testing.T) {
	assert.NoError(t, rowsAffectedOrNotFound(pgconn.NewCommandTag("UPDATE 1"), "account"))

	err := rowsAffectedOrNotFound(pgconn.NewCommandTag("UPDATE 0"), "account")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "account")
}
