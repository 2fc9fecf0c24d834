package postgres

import (
	"context"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/entity"
)

// Sub-record statements are shared between the aggregate write path (running
// on a transaction) and the standalone endpoints (running on a pooled
// session) via the querier interface.
//
// Create is strict: a second row for the same user violates the user_id
// primary key and surfaces as apperr.ErrDuplicateKey. Creating a sub-record
// for a missing user trips the foreign key and maps to apperr.ErrNotFound.

func insertAccount(ctx context.Context, q querier, a *entity.Account) error {
	err := q.QueryRow(ctx, `
		INSERT INTO accounts (user_id, status, role, subscription, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING created_at, updated_at
	`, a.UserID, a.Status, a.Role, a.Subscription).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func getAccount(ctx context.Context, q querier, userID int64) (*entity.Account, error) {
	a := &entity.Account{}
	err := q.QueryRow(ctx, `
		SELECT user_id, status, role, subscription, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`, userID).Scan(&a.UserID, &a.Status, &a.Role, &a.Subscription, &a.CreatedAt, &a.UpdatedAt)
	return noRowsToNil(a, err)
}

func insertAddress(ctx context.Context, q querier, a *entity.Address) error {
	err := q.QueryRow(ctx, `
		INSERT INTO addresses (user_id, street, city, province, postal_code, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`, a.UserID, a.Street, a.City, a.Province, a.PostalCode, a.Country).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func getAddress(ctx context.Context, q querier, userID int64) (*entity.Address, error) {
	a := &entity.Address{}
	err := q.QueryRow(ctx, `
		SELECT user_id, street, city, province, postal_code, country, created_at, updated_at
		FROM addresses
		WHERE user_id = $1
	`, userID).Scan(&a.UserID, &a.Street, &a.City, &a.Province, &a.PostalCode, &a.Country, &a.CreatedAt, &a.UpdatedAt)
	return noRowsToNil(a, err)
}

func insertPreferences(ctx context.Context, q querier, p *entity.Preferences) error {
	err := q.QueryRow(ctx, `
		INSERT INTO preferences (user_id, language, timezone, email_notifications, sms_notifications, push_notifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`, p.UserID, p.Language, p.Timezone, p.EmailNotifications, p.SMSNotifications, p.PushNotifications).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func getPreferences(ctx context.Context, q querier, userID int64) (*entity.Preferences, error) {
	p := &entity.Preferences{}
	err := q.QueryRow(ctx, `
		SELECT user_id, language, timezone, email_notifications, sms_notifications, push_notifications, created_at, updated_at
		FROM preferences
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Language, &p.Timezone, &p.EmailNotifications, &p.SMSNotifications, &p.PushNotifications, &p.CreatedAt, &p.UpdatedAt)
	return noRowsToNil(p, err)
}

func insertProfile(ctx context.Context, q querier, p *entity.Profile) error {
	err := q.QueryRow(ctx, `
		INSERT INTO profiles (user_id, bio, avatar_url, website, company, job_title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`, p.UserID, p.Bio, p.AvatarURL, p.Website, p.Company, p.JobTitle).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func getProfile(ctx context.Context, q querier, userID int64) (*entity.Profile, error) {
	p := &entity.Profile{}
	err := q.QueryRow(ctx, `
		SELECT user_id, bio, avatar_url, website, company, job_title, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Bio, &p.AvatarURL, &p.Website, &p.Company, &p.JobTitle, &p.CreatedAt, &p.UpdatedAt)
	return noRowsToNil(p, err)
}

func (r *UserRepository) CreateAccount(ctx context.Context, a *entity.Account) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return insertAccount(ctx, conn, a)
}

func (r *UserRepository) UpdateAccount(ctx context.Context, a *entity.Account) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	tag, err := conn.Exec(ctx, `
		UPDATE accounts SET status = $1, role = $2, subscription = $3, updated_at = now()
		WHERE user_id = $4
	`, a.Status, a.Role, a.Subscription, a.UserID)
	if err != nil {
		return mapError(err)
	}
	return rowsAffectedOrNotFound(tag, "account")
}

func (r *UserRepository) DeleteAccount(ctx context.Context, userID int64) error {
	return r.deleteSubRecord(ctx, `DELETE FROM accounts WHERE user_id = $1`, userID, "account")
}

func (r *UserRepository) CreateAddress(ctx context.Context, a *entity.Address) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return insertAddress(ctx, conn, a)
}

func (r *UserRepository) UpdateAddress(ctx context.Context, a *entity.Address) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	tag, err := conn.Exec(ctx, `
		UPDATE addresses SET street = $1, city = $2, province = $3, postal_code = $4, country = $5, updated_at = now()
		WHERE user_id = $6
	`, a.Street, a.City, a.Province, a.PostalCode, a.Country, a.UserID)
	if err != nil {
		return mapError(err)
	}
	return rowsAffectedOrNotFound(tag, "address")
}

func (r *UserRepository) DeleteAddress(ctx context.Context, userID int64) error {
	return r.deleteSubRecord(ctx, `DELETE FROM addresses WHERE user_id = $1`, userID, "address")
}

func (r *UserRepository) CreatePreferences(ctx context.Context, p *entity.Preferences) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return insertPreferences(ctx, conn, p)
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, p *entity.Preferences) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	tag, err := conn.Exec(ctx, `
		UPDATE preferences SET language = $1, timezone = $2, email_notifications = $3, sms_notifications = $4, push_notifications = $5, updated_at = now()
		WHERE user_id = $6
	`, p.Language, p.Timezone, p.EmailNotifications, p.SMSNotifications, p.PushNotifications, p.UserID)
	if err != nil {
		return mapError(err)
	}
	return rowsAffectedOrNotFound(tag, "preferences")
}

func (r *UserRepository) DeletePreferences(ctx context.Context, userID int64) error {
	return r.deleteSubRecord(ctx, `DELETE FROM preferences WHERE user_id = $1`, userID, "preferences")
}

func (r *UserRepository) CreateProfile(ctx context.Context, p *entity.Profile) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return insertProfile(ctx, conn, p)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, p *entity.Profile) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	tag, err := conn.Exec(ctx, `
		UPDATE profiles SET bio = $1, avatar_url = $2, website = $3, company = $4, job_title = $5, updated_at = now()
		WHERE user_id = $6
	`, p.Bio, p.AvatarURL, p.Website, p.Company, p.JobTitle, p.UserID)
	if err != nil {
		return mapError(err)
	}
	return rowsAffectedOrNotFound(tag, "profile")
}

func (r *UserRepository) DeleteProfile(ctx context.Context, userID int64) error {
	return r.deleteSubRecord(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID, "profile")
}

func (r *UserRepository) deleteSubRecord(ctx context.Context, sql string, userID int64, name string) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	tag, err := conn.Exec(ctx, sql, userID)
	if err != nil {
		return mapError(err)
	}
	return rowsAffectedOrNotFound(tag, name)
}
