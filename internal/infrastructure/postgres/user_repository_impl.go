package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/apperr"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/entity"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/repository"
)

// UserRepository is the pgx implementation of repository.UserRepository.
// Writes that touch multiple tables run in one transaction on a single pooled
// session; reads acquire a session per call and never share a transaction.
type UserRepository struct {
	db     *DB
	ids    *IDGenerator
	logger *logrus.Logger
}

func NewUserRepository(db *DB, logger *logrus.Logger) *UserRepository {
	return &UserRepository{db: db, ids: NewIDGenerator(), logger: logger}
}

var _ repository.UserRepository = (*UserRepository)(nil)

const insertUserSQL = `
	INSERT INTO users (id, username, email, first_name, last_name, phone, birth_date, gender, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	RETURNING created_at, updated_at
`

// CreateUser persists the aggregate atomically. The identifier reservation,
// the core insert, and every provided sub-record insert share one transaction;
// rollback on any failure releases the reserved identifier with it.
func (r *UserRepository) CreateUser(ctx context.Context, agg *entity.UserAggregate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := r.ids.Reserve(ctx, tx)
	if err != nil {
		return err
	}

	u := &agg.User
	u.ID = id
	if err := r.insertUser(ctx, tx, u); err != nil {
		return err
	}

	if agg.Account != nil {
		agg.Account.UserID = id
		if err := insertAccount(ctx, tx, agg.Account); err != nil {
			return err
		}
	}
	if agg.Address != nil {
		agg.Address.UserID = id
		if err := insertAddress(ctx, tx, agg.Address); err != nil {
			return err
		}
	}
	if agg.Preferences != nil {
		agg.Preferences.UserID = id
		if err := insertPreferences(ctx, tx, agg.Preferences); err != nil {
			return err
		}
	}
	if agg.Profile != nil {
		agg.Profile.UserID = id
		if err := insertProfile(ctx, tx, agg.Profile); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	r.logger.WithField("user_id", id).Info("user created")
	return nil
}

// CreateUsersBulk inserts all core rows in one shared transaction. Any single
// item failing rolls back the whole batch.
func (r *UserRepository) CreateUsersBulk(ctx context.Context, users []*entity.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range users {
		id, err := r.ids.Reserve(ctx, tx)
		if err != nil {
			return err
		}
		u.ID = id
		if err := r.insertUser(ctx, tx, u); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	r.logger.WithField("count", len(users)).Info("users bulk created")
	return nil
}

func (r *UserRepository) insertUser(ctx context.Context, q querier, u *entity.User) error {
	err := q.QueryRow(ctx, insertUserSQL,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Phone, u.BirthDate, u.Gender,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

const selectUserSQL = `
	SELECT id, username, email, first_name, last_name, phone, birth_date, gender, created_at, updated_at
	FROM users
	WHERE id = $1
`

// GetUser assembles the composite view: the core row plus four independent
// sub-record lookups on the same pooled session. The lookups do not share a
// transaction; a sub-record committed concurrently may or may not appear.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*entity.UserAggregate, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	agg := &entity.UserAggregate{}
	u := &agg.User
	var gender *string
	err = conn.QueryRow(ctx, selectUserSQL, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.BirthDate, &gender, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if gender != nil {
		g := entity.Gender(*gender)
		u.Gender = &g
	}

	if agg.Account, err = getAccount(ctx, conn, id); err != nil {
		return nil, err
	}
	if agg.Address, err = getAddress(ctx, conn, id); err != nil {
		return nil, err
	}
	if agg.Preferences, err = getPreferences(ctx, conn, id); err != nil {
		return nil, err
	}
	if agg.Profile, err = getProfile(ctx, conn, id); err != nil {
		return nil, err
	}
	return agg, nil
}

// UpdateUser renders the patch into a single UPDATE that also refreshes
// updated_at. Column names come from the application-layer whitelist, never
// from request input; only values are parameterized.
func (r *UserRepository) UpdateUser(ctx context.Context, id int64, patch repository.Patch) error {
	if len(patch) == 0 {
		return apperr.ErrEmptyPatch
	}

	set := make([]string, 0, len(patch)+1)
	args := make([]any, 0, len(patch)+1)
	for i, f := range patch {
		set = append(set, fmt.Sprintf("%s = $%d", f.Column, i+1))
		args = append(args, f.Value)
	}
	set = append(set, "updated_at = now()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err)
	}
	return rowsAffectedOrNotFound(tag, "user")
}

// DeleteUser removes the core row; the schema cascades to all four sub-record
// tables atomically.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if err := rowsAffectedOrNotFound(tag, "user"); err != nil {
		return err
	}
	r.logger.WithField("user_id", id).Info("user deleted")
	return nil
}

// noRowsToNil turns a no-rows read into an absent slot instead of an error.
func noRowsToNil[T any](rec *T, err error) (*T, error) {
	if err == nil {
		return rec, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return nil, mapError(err)
}
