package entity

// UserAggregate is the composite view of a user: the core row plus its four
// optional sub-records. A nil slot means no row exists for that table, which is
// distinct from a row holding default values.
type UserAggregate struct {
	User        User
	Account     *Account
	Address     *Address
	Preferences *Preferences
	Profile     *Profile
}

// UserView is one row of a search result: the core columns joined with the
// account and address columns. Users without an account or address still
// appear, with nil in the joined fields.
type UserView struct {
	User
	Status       *AccountStatus
	Role         *Role
	Subscription *Subscription
	City         *string
	Province     *string
}

// SearchResult is a page of matching users plus the distinct-user total under
// the same filters, independent of pagination.
type SearchResult struct {
	Rows  []UserView
	Total int
}
