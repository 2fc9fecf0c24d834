package entity

import "time"

// Preference defaults applied when a preferences payload is supplied with
// omitted fields.
const (
	DefaultLanguage = "en"
	DefaultTimezone = "UTC"
)

// Address is the 1:1 optional postal-address sub-record of a User.
// All fields are nullable; there are no defaults.
type Address struct {
	UserID     int64
	Street     *string
	City       *string
	Province   *string
	PostalCode *string
	Country    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Preferences is the 1:1 optional notification/locale sub-record of a User.
type Preferences struct {
	UserID             int64
	Language           string
	Timezone           string
	EmailNotifications bool
	SMSNotifications   bool
	PushNotifications  bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultPreferences returns a preferences record carrying the documented
// defaults: language "en", timezone "UTC", notifications email on, sms off,
// push on. Callers overlay any explicitly provided fields.
func DefaultPreferences(userID int64) Preferences {
	return Preferences{
		UserID:             userID,
		Language:           DefaultLanguage,
		Timezone:           DefaultTimezone,
		EmailNotifications: true,
		SMSNotifications:   false,
		PushNotifications:  true,
	}
}

// Profile is the 1:1 optional public-profile sub-record of a User.
// All fields are nullable; there are no defaults.
type Profile struct {
	UserID    int64
	Bio       *string
	AvatarURL *string
	Website   *string
	Company   *string
	JobTitle  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
