package handlers

import (
	"time"

	"github.com/fiqriashiddiqi/user-registry/internal/application"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/entity"
)

// Request DTOs. Binding validates shape and enumeration spellings; semantic
// validation lives in the application layer.

type coreRequest struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date" binding:"omitempty,birthdate"`
	Gender    *string `json:"gender" binding:"omitempty,gender"`
}

type accountRequest struct {
	Status       *string `json:"status" binding:"omitempty,account_status"`
	Role         *string `json:"role" binding:"omitempty,account_role"`
	Subscription *string `json:"subscription" binding:"omitempty,subscription"`
}

type addressRequest struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

type preferencesRequest struct {
	Language           *string `json:"language"`
	Timezone           *string `json:"timezone"`
	EmailNotifications *bool   `json:"email_notifications"`
	SMSNotifications   *bool   `json:"sms_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
}

type profileRequest struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Website   *string `json:"website" binding:"omitempty,url"`
	Company   *string `json:"company"`
	JobTitle  *string `json:"job_title"`
}

type createUserRequest struct {
	coreRequest
	Account     *accountRequest     `json:"account"`
	Address     *addressRequest     `json:"address"`
	Preferences *preferencesRequest `json:"preferences"`
	Profile     *profileRequest     `json:"profile"`
}

type bulkCreateRequest struct {
	Users []coreRequest `json:"users" binding:"required,min=1,dive"`
}

func (r coreRequest) toInput() application.CoreInput {
	return application.CoreInput{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		BirthDate: r.BirthDate,
		Gender:    r.Gender,
	}
}

func (r accountRequest) toInput() application.AccountInput {
	return application.AccountInput{Status: r.Status, Role: r.Role, Subscription: r.Subscription}
}

func (r addressRequest) toInput() application.AddressInput {
	return application.AddressInput{
		Street:     r.Street,
		City:       r.City,
		Province:   r.Province,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

func (r preferencesRequest) toInput() application.PreferencesInput {
	return application.PreferencesInput{
		Language:           r.Language,
		Timezone:           r.Timezone,
		EmailNotifications: r.EmailNotifications,
		SMSNotifications:   r.SMSNotifications,
		PushNotifications:  r.PushNotifications,
	}
}

func (r profileRequest) toInput() application.ProfileInput {
	return application.ProfileInput{
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
		Website:   r.Website,
		Company:   r.Company,
		JobTitle:  r.JobTitle,
	}
}

// Response DTOs. Sub-record slots marshal as null when absent, never as
// zero-value placeholder objects.

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Phone     *string   `json:"phone"`
	BirthDate *string   `json:"birth_date"`
	Gender    *string   `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type accountResponse struct {
	Status       string    `json:"status"`
	Role         string    `json:"role"`
	Subscription string    `json:"subscription"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type addressResponse struct {
	Street     *string   `json:"street"`
	City       *string   `json:"city"`
	Province   *string   `json:"province"`
	PostalCode *string   `json:"postal_code"`
	Country    *string   `json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type preferencesResponse struct {
	Language           string    `json:"language"`
	Timezone           string    `json:"timezone"`
	EmailNotifications bool      `json:"email_notifications"`
	SMSNotifications   bool      `json:"sms_notifications"`
	PushNotifications  bool      `json:"push_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type profileResponse struct {
	Bio       *string   `json:"bio"`
	AvatarURL *string   `json:"avatar_url"`
	Website   *string   `json:"website"`
	Company   *string   `json:"company"`
	JobTitle  *string   `json:"job_title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type aggregateResponse struct {
	userResponse
	Account     *accountResponse     `json:"account"`
	Address     *addressResponse     `json:"address"`
	Preferences *preferencesResponse `json:"preferences"`
	Profile     *profileResponse     `json:"profile"`
}

type searchRowResponse struct {
	userResponse
	Status       *string `json:"status"`
	Role         *string `json:"role"`
	Subscription *string `json:"subscription"`
	City         *string `json:"city"`
	Province     *string `json:"province"`
}

type searchResponse struct {
	Users []searchRowResponse `json:"users"`
	Total int                 `json:"total"`
}

func toUserResponse(u entity.User) userResponse {
	out := userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.BirthDate != nil {
		s := u.BirthDate.Format("2006-01-02")
		out.BirthDate = &s
	}
	if u.Gender != nil {
		s := string(*u.Gender)
		out.Gender = &s
	}
	return out
}

func toAccountResponse(a *entity.Account) *accountResponse {
	if a == nil {
		return nil
	}
	return &accountResponse{
		Status:       string(a.Status),
		Role:         string(a.Role),
		Subscription: string(a.Subscription),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAddressResponse(a *entity.Address) *addressResponse {
	if a == nil {
		return nil
	}
	return &addressResponse{
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toPreferencesResponse(p *entity.Preferences) *preferencesResponse {
	if p == nil {
		return nil
	}
	return &preferencesResponse{
		Language:           p.Language,
		Timezone:           p.Timezone,
		EmailNotifications: p.EmailNotifications,
		SMSNotifications:   p.SMSNotifications,
		PushNotifications:  p.PushNotifications,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toProfileResponse(p *entity.Profile) *profileResponse {
	if p == nil {
		return nil
	}
	return &profileResponse{
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Website:   p.Website,
		Company:   p.Company,
		JobTitle:  p.JobTitle,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toAggregateResponse(agg *entity.UserAggregate) aggregateResponse {
	return aggregateResponse{
		userResponse: toUserResponse(agg.User),
		Account:      toAccountResponse(agg.Account),
		Address:      toAddressResponse(agg.Address),
		Preferences:  toPreferencesResponse(agg.Preferences),
		Profile:      toProfileResponse(agg.Profile),
	}
}

func toSearchResponse(res *entity.SearchResult) searchResponse {
	rows := make([]searchRowResponse, 0, len(res.Rows))
	for _, v := range res.Rows {
		row := searchRowResponse{
			userResponse: toUserResponse(v.User),
			City:         v.City,
			Province:     v.Province,
		}
		if v.Status != nil {
			s := string(*v.Status)
			row.Status = &s
		}
		if v.Role != nil {
			s := string(*v.Role)
			row.Role = &s
		}
		if v.Subscription != nil {
			s := string(*v.Subscription)
			row.Subscription = &s
		}
		rows = append(rows, row)
	}
	return searchResponse{Users: rows, Total: res.Total}
}
