package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/apperr"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/entity"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/repository"
)

// birthDateLayout is the wire format for birth dates in patches and payloads.
const birthDateLayout = "2006-01-02"

// Service exposes the aggregate operations to the HTTP layer as plain calls
// taking and returning domain structures. It owns input validation, default
// materialization for sub-record payloads, and the patch whitelist; storage
// semantics live behind the repository interface.
type Service struct {
	Repo   repository.UserRepository
	Logger *logrus.Logger
}

func NewService(repo repository.UserRepository, logger *logrus.Logger) *Service {
	return &Service{Repo: repo, Logger: logger}
}

// CoreInput carries the core user columns. Username and Email are required;
// everything else is optional and nil maps to NULL.
type CoreInput struct {
	Username  string
	Email     string
	FirstName *string
	LastName  *string
	Phone     *string
	BirthDate *string // YYYY-MM-DD
	Gender    *string
}

// AccountInput, AddressInput, PreferencesInput and ProfileInput are optional
// sub-record payloads. A nil payload means "no row"; a present payload with
// omitted fields gets the documented defaults.
type AccountInput struct {
	Status       *string
	Role         *string
	Subscription *string
}

type AddressInput struct {
	Street     *string
	City       *string
	Province   *string
	PostalCode *string
	Country    *string
}

type PreferencesInput struct {
	Language           *string
	Timezone           *string
	EmailNotifications *bool
	SMSNotifications   *bool
	PushNotifications  *bool
}

type ProfileInput struct {
	Bio       *string
	AvatarURL *string
	Website   *string
	Company   *string
	JobTitle  *string
}

type CreateUserInput struct {
	CoreInput
	Account     *AccountInput
	Address     *AddressInput
	Preferences *PreferencesInput
	Profile     *ProfileInput
}

// SearchInput mirrors repository.SearchCriteria before enum validation.
type SearchInput struct {
	Query        string
	Status       string
	Role         string
	Subscription string
	City         string
	Province     string
	Page         int
	PageSize     int
}

// CreateUser validates the payload, materializes defaults for the provided
// sub-records, and persists everything through one repository transaction.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*entity.UserAggregate, error) {
	u, err := coreToEntity(in.CoreInput)
	if err != nil {
		return nil, err
	}

	agg := &entity.UserAggregate{User: *u}
	if in.Account != nil {
		if agg.Account, err = materializeAccount(0, *in.Account); err != nil {
			return nil, err
		}
	}
	if in.Address != nil {
		agg.Address = materializeAddress(0, *in.Address)
	}
	if in.Preferences != nil {
		agg.Preferences = materializePreferences(0, *in.Preferences)
	}
	if in.Profile != nil {
		agg.Profile = materializeProfile(0, *in.Profile)
	}

	if err := s.Repo.CreateUser(ctx, agg); err != nil {
		return nil, err
	}
	return agg, nil
}

// CreateUsersBulk applies the core-row creation to every item inside one
// shared transaction; a single bad item fails the whole batch before any
// storage work happens.
func (s *Service) CreateUsersBulk(ctx context.Context, ins []CoreInput) ([]*entity.User, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w: empty batch", apperr.ErrInvalidInput)
	}
	users := make([]*entity.User, 0, len(ins))
	for i, in := range ins {
		u, err := coreToEntity(in)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		users = append(users, u)
	}
	if err := s.Repo.CreateUsersBulk(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*entity.UserAggregate, error) {
	return s.Repo.GetUser(ctx, id)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.Repo.DeleteUser(ctx, id)
}

// SearchUsers validates enum criteria up front: a bogus value is
// ErrInvalidCriteria, never a silent empty result.
func (s *Service) SearchUsers(ctx context.Context, in SearchInput) (*entity.SearchResult, error) {
	if in.Status != "" && !entity.AccountStatus(in.Status).Valid() {
		return nil, fmt.Errorf("%w: status %q", apperr.ErrInvalidCriteria, in.Status)
	}
	if in.Role != "" && !entity.Role(in.Role).Valid() {
		return nil, fmt.Errorf("%w: role %q", apperr.ErrInvalidCriteria, in.Role)
	}
	if in.Subscription != "" && !entity.Subscription(in.Subscription).Valid() {
		return nil, fmt.Errorf("%w: subscription %q", apperr.ErrInvalidCriteria, in.Subscription)
	}
	return s.Repo.Search(ctx, repository.SearchCriteria{
		Query:        strings.TrimSpace(in.Query),
		Status:       in.Status,
		Role:         in.Role,
		Subscription: in.Subscription,
		City:         in.City,
		Province:     in.Province,
		Page:         in.Page,
		PageSize:     in.PageSize,
	})
}

// patchWhitelist fixes which core columns a partial update may touch, and in
// which order they render into the UPDATE statement.
var patchWhitelist = []string{"username", "email", "first_name", "last_name", "phone", "birth_date", "gender"}

// UpdateUser filters the raw patch to the whitelist, silently dropping
// unknown keys, and applies what remains in one statement. An effectively
// empty patch is an error, not a no-op.
func (s *Service) UpdateUser(ctx context.Context, id int64, raw map[string]any) error {
	patch := make(repository.Patch, 0, len(raw))
	for _, col := range patchWhitelist {
		v, ok := raw[col]
		if !ok {
			continue
		}
		val, err := patchValue(col, v)
		if err != nil {
			return err
		}
		patch = append(patch, repository.PatchField{Column: col, Value: val})
	}
	if len(patch) == 0 {
		return fmt.Errorf("%w: no updatable fields", apperr.ErrEmptyPatch)
	}
	return s.Repo.UpdateUser(ctx, id, patch)
}

// patchValue validates and converts one whitelisted patch entry.
func patchValue(col string, v any) (any, error) {
	if v == nil {
		if col == "username" || col == "email" {
			return nil, fmt.Errorf("%w: %s cannot be null", apperr.ErrInvalidInput, col)
		}
		return nil, nil
	}
	str, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", apperr.ErrInvalidInput, col)
	}
	switch col {
	case "username", "email":
		if strings.TrimSpace(str) == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", apperr.ErrInvalidInput, col)
		}
	case "birth_date":
		t, err := time.Parse(birthDateLayout, str)
		if err != nil {
			return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", apperr.ErrInvalidInput)
		}
		return t, nil
	case "gender":
		if !entity.Gender(str).Valid() {
			return nil, fmt.Errorf("%w: gender %q", apperr.ErrInvalidInput, str)
		}
	}
	return str, nil
}

// Sub-record operations. Create is strict: an existing row is a duplicate-key
// conflict, not an upsert. Update replaces the full row, with the same
// defaults as create applied to omitted fields.

func (s *Service) CreateAccount(ctx context.Context, userID int64, in AccountInput) (*entity.Account, error) {
	a, err := materializeAccount(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateAccount(ctx context.Context, userID int64, in AccountInput) (*entity.Account, error) {
	a, err := materializeAccount(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAccount(ctx context.Context, userID int64) error {
	return s.Repo.DeleteAccount(ctx, userID)
}

func (s *Service) CreateAddress(ctx context.Context, userID int64, in AddressInput) (*entity.Address, error) {
	a := materializeAddress(userID, in)
	if err := s.Repo.CreateAddress(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateAddress(ctx context.Context, userID int64, in AddressInput) (*entity.Address, error) {
	a := materializeAddress(userID, in)
	if err := s.Repo.UpdateAddress(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAddress(ctx context.Context, userID int64) error {
	return s.Repo.DeleteAddress(ctx, userID)
}

func (s *Service) CreatePreferences(ctx context.Context, userID int64, in PreferencesInput) (*entity.Preferences, error) {
	p := materializePreferences(userID, in)
	if err := s.Repo.CreatePreferences(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePreferences(ctx context.Context, userID int64, in PreferencesInput) (*entity.Preferences, error) {
	p := materializePreferences(userID, in)
	if err := s.Repo.UpdatePreferences(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePreferences(ctx context.Context, userID int64) error {
	return s.Repo.DeletePreferences(ctx, userID)
}

func (s *Service) CreateProfile(ctx context.Context, userID int64, in ProfileInput) (*entity.Profile, error) {
	p := materializeProfile(userID, in)
	if err := s.Repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*entity.Profile, error) {
	p := materializeProfile(userID, in)
	if err := s.Repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProfile(ctx context.Context, userID int64) error {
	return s.Repo.DeleteProfile(ctx, userID)
}

func coreToEntity(in CoreInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperr.ErrInvalidInput)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrInvalidInput)
	}
	u := &entity.User{
		Username:  username,
		Email:     email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	}
	if in.BirthDate != nil {
		t, err := time.Parse(birthDateLayout, *in.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", apperr.ErrInvalidInput)
		}
		u.BirthDate = &t
	}
	if in.Gender != nil {
		g := entity.Gender(*in.Gender)
		if !g.Valid() {
			return nil, fmt.Errorf("%w: gender %q", apperr.ErrInvalidInput, *in.Gender)
		}
		u.Gender = &g
	}
	return u, nil
}

func materializeAccount(userID int64, in AccountInput) (*entity.Account, error) {
	a := &entity.Account{UserID: userID}
	if in.Status != nil {
		a.Status = entity.AccountStatus(*in.Status)
	}
	if in.Role != nil {
		a.Role = entity.Role(*in.Role)
	}
	if in.Subscription != nil {
		a.Subscription = entity.Subscription(*in.Subscription)
	}
	a.ApplyDefaults()
	if !a.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", apperr.ErrInvalidInput, a.Status)
	}
	if !a.Role.Valid() {
		return nil, fmt.Errorf("%w: role %q", apperr.ErrInvalidInput, a.Role)
	}
	if !a.Subscription.Valid() {
		return nil, fmt.Errorf("%w: subscription %q", apperr.ErrInvalidInput, a.Subscription)
	}
	return a, nil
}

func materializeAddress(userID int64, in AddressInput) *entity.Address {
	return &entity.Address{
		UserID:     userID,
		Street:     in.Street,
		City:       in.City,
		Province:   in.Province,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	}
}

func materializePreferences(userID int64, in PreferencesInput) *entity.Preferences {
	p := entity.DefaultPreferences(userID)
	if in.Language != nil {
		p.Language = *in.Language
	}
	if in.Timezone != nil {
		p.Timezone = *in.Timezone
	}
	if in.EmailNotifications != nil {
		p.EmailNotifications = *in.EmailNotifications
	}
	if in.SMSNotifications != nil {
		p.SMSNotifications = *in.SMSNotifications
	}
	if in.PushNotifications != nil {
		p.PushNotifications = *in.PushNotifications
	}
	return &p
}

func materializeProfile(userID int64, in ProfileInput) *entity.Profile {
	return &entity.Profile{
		UserID:    userID,
		Bio:       in.Bio,
		AvatarURL: in.AvatarURL,
		Website:   in.Website,
		Company:   in.Company,
		JobTitle:  in.JobTitle,
	}
}
