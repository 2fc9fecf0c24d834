package entity

import "time"

// AccountStatus is the lifecycle state of a user's account record.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// Role is the authorization role carried by an account.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleEditor    Role = "editor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator, RoleEditor:
		return true
	}
	return false
}

// Subscription is the billing tier of an account.
type Subscription string

const (
	SubscriptionFree       Subscription = "free"
	SubscriptionBasic      Subscription = "basic"
	SubscriptionPremium    Subscription = "premium"
	SubscriptionEnterprise Subscription = "enterprise"
)

func (s Subscription) Valid() bool {
	switch s {
	case SubscriptionFree, SubscriptionBasic, SubscriptionPremium, SubscriptionEnterprise:
		return true
	}
	return false
}

// Account is the 1:1 optional account-state sub-record of a User.
type Account struct {
	UserID       int64
	Status       AccountStatus
	Role         Role
	Subscription Subscription
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ApplyDefaults fills zero-valued enum fields with the documented defaults.
// Called when an account payload is present but individual fields were omitted;
// an absent payload stays absent and never becomes a defaulted record.
func (a *Account) ApplyDefaults() {
	if a.Status == "" {
		a.Status = StatusActive
	}
	if a.Role == "" {
		a.Role = RoleUser
	}
	if a.Subscription == "" {
		a.Subscription = SubscriptionFree
	}
}
