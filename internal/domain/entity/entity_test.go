package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenderValid(t *testing.T) {
	assert.True(t, GenderMale.Valid())
	assert.True(t, GenderFemale.Valid())
	assert.True(t, GenderOther.Valid())
	assert.False(t, Gender("").Valid())
	assert.False(t, Gender("unknown").Valid())
}

func TestAccountEnumsValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusSuspended.Valid())
	assert.False(t, AccountStatus("disabled").Valid())

	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEditor.Valid())
	assert.False(t, Role("superuser").Valid())

	assert.True(t, SubscriptionEnterprise.Valid())
	assert.False(t, Subscription("trial").Valid())
}

func TestAccountApplyDefaults(t *testing.T) {
	a := Account{UserID: 1}
	a.ApplyDefaults()
	assert.Equal(t, StatusActive, a.Status)
	assert.Equal(t, RoleUser, a.Role)
	assert.Equal(t, SubscriptionFree, a.Subscription)
}

func TestAccountApplyDefaultsKeepsExplicitValues(t *testing.T) {
	a := Account{UserID: 1, Status: StatusSuspended, Role: RoleAdmin, Subscription: SubscriptionPremium}
	a.ApplyDefaults()
	assert.Equal(t, StatusSuspended, a.Status)
	assert.Equal(t, RoleAdmin, a.Role)
	assert.Equal(t, SubscriptionPremium, a.Subscription)
}

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences(42)
	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, DefaultLanguage, p.Language)
	assert.Equal(t, DefaultTimezone, p.Timezone)
	assert.True(t, p.EmailNotifications)
	assert.False(t, p.SMSNotifications)
	assert.True(t, p.PushNotifications)
}
