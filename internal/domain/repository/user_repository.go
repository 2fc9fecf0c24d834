package repository

import (
	"context"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/entity"
)

// PatchField is one whitelisted column/value pair of a partial update. The
// application layer builds the ordered list; the storage layer renders it into
// a single UPDATE statement.
type PatchField struct {
	Column string
	Value  any
}

// Patch is an ordered set of fields to apply to the core user row.
type Patch []PatchField

// SearchCriteria are the optional, logically ANDed filters of a user search.
// Empty strings mean "not filtered". Enum values are validated by the
// application layer before they reach storage.
type SearchCriteria struct {
	Query        string // case-insensitive substring over username/email/first/last name
	Status       string
	Role         string
	Subscription string
	City         string
	Province     string
	Page         int
	PageSize     int
}

// UserRepository defines the storage operations for the user aggregate.
type UserRepository interface {
	// CreateUser persists the aggregate atomically: identifier reservation,
	// core insert, and every provided sub-record share one transaction.
	// Fills ID and the server-assigned timestamps on success.
	CreateUser(ctx context.Context, agg *entity.UserAggregate) error

	// CreateUsersBulk inserts all core rows in one shared transaction;
	// any single failure rolls back the whole batch.
	CreateUsersBulk(ctx context.Context, users []*entity.User) error

	// GetUser returns the aggregate, with nil slots for absent sub-records.
	GetUser(ctx context.Context, id int64) (*entity.UserAggregate, error)

	// UpdateUser applies the patch and refreshes updated_at in one statement.
	UpdateUser(ctx context.Context, id int64, patch Patch) error

	// DeleteUser removes the core row; sub-records go with it via cascade.
	DeleteUser(ctx context.Context, id int64) error

	// Search runs the count and page queries sharing one predicate list.
	Search(ctx context.Context, c SearchCriteria) (*entity.SearchResult, error)

	CreateAccount(ctx context.Context, a *entity.Account) error
	UpdateAccount(ctx context.Context, a *entity.Account) error
	DeleteAccount(ctx context.Context, userID int64) error

	CreateAddress(ctx context.Context, a *entity.Address) error
	UpdateAddress(ctx context.Context, a *entity.Address) error
	DeleteAddress(ctx context.Context, userID int64) error

	CreatePreferences(ctx context.Context, p *entity.Preferences) error
	UpdatePreferences(ctx context.Context, p *entity.Preferences) error
	DeletePreferences(ctx context.Context, userID int64) error

	CreateProfile(ctx context.Context, p *entity.Profile) error
	UpdateProfile(ctx context.Context, p *entity.Profile) error
	DeleteProfile(ctx context.Context, userID int64) error
}
