package entity

import "time"

// Gender is the self-reported gender of a user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// User is the aggregate root: the core identity row of the five-table schema.
// The ID is a 64-bit time-ordered value assigned at insert time and never reused
// for a live row. Optional fields are pointers; nil means the column is NULL.
type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName *string
	LastName  *string
	Phone     *string
	BirthDate *time.Time
	Gender    *Gender
	CreatedAt time.Time
	UpdatedAt time.Time
}
