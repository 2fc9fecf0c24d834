package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/fiqriashiddiqi/user-registry/internal/application"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/apperr"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/entity"
	"github.com/fiqriashiddiqi/user-registry/internal/domain/repository"
	"github.com/fiqriashiddiqi/user-registry/pkg/validation"
)

// stubRepo answers every storage call with the scripted error, recording the
// last aggregate and patch it saw.
type stubRepo struct {
	err       error
	aggregate *entity.UserAggregate
	patched   repository.Patch
}

func (s *stubRepo) CreateUser(_ context.Context, agg *entity.UserAggregate) error {
	if s.err != nil {
		return s.err
	}
	agg.User.ID = 1756450000000000001
	return nil
}

func (s *stubRepo) CreateUsersBulk(_ context.Context, users []*entity.User) error {
	if s.err != nil {
		return s.err
	}
	for i, u := range users {
		u.ID = int64(1756450000000000100 + i)
	}
	return nil
}

func (s *stubRepo) GetUser(_ context.Context, id int64) (*entity.UserAggregate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.aggregate, nil
}

func (s *stubRepo) UpdateUser(_ context.Context, id int64, patch repository.Patch) error {
	s.patched = patch
	return s.err
}

func (s *stubRepo) DeleteUser(_ context.Context, id int64) error { return s.err }

func (s *stubRepo) Search(_ context.Context, c repository.SearchCriteria) (*entity.SearchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.SearchResult{Rows: []entity.UserView{}}, nil
}

func (s *stubRepo) CreateAccount(_ context.Context, a *entity.Account) error { return s.err }
func (s *stubRepo) UpdateAccount(_ context.Context, a *entity.Account) error { return s.err }
func (s *stubRepo) DeleteAccount(_ context.Context, userID int64) error      { return s.err }

func (s *stubRepo) CreateAddress(_ context.Context, a *entity.Address) error { return s.err }
func (s *stubRepo) UpdateAddress(_ context.Context, a *entity.Address) error { return s.err }
func (s *stubRepo) DeleteAddress(_ context.Context, userID int64) error      { return s.err }

func (s *stubRepo) CreatePreferences(_ context.Context, p *entity.Preferences) error { return s.err }
func (s *stubRepo) UpdatePreferences(_ context.Context, p *entity.Preferences) error { return s.err }
func (s *stubRepo) DeletePreferences(_ context.Context, userID int64) error          { return s.err }

func (s *stubRepo) CreateProfile(_ context.Context, p *entity.Profile) error { return s.err }
func (s *stubRepo) UpdateProfile(_ context.Context, p *entity.Profile) error { return s.err }
func (s *stubRepo) DeleteProfile(_ context.Context, userID int64) error      { return s.err }

var _ repository.UserRepository = (*stubRepo)(nil)

func newTestRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := NewUserHandler(userapp.NewService(repo, logger), logger)

	r := gin.New()
	r.POST("/users", h.Create)
	r.POST("/users/bulk", h.CreateBulk)
	r.GET("/users", h.Search)
	r.GET("/users/:id", h.Get)
	r.PATCH("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Delete)
	r.POST("/users/:id/account", h.CreateAccount)
	r.PUT("/users/:id/account", h.UpdateAccount)
	r.DELETE("/users/:id/account", h.DeleteAccount)
	r.POST("/users/:id/preferences", h.CreatePreferences)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateUserReturns201WithAbsentSubRecordsNull(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPost, "/users", `{"username":"bob","email":"bob@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env["success"])
	data := env["data"].(map[string]any)
	assert.Equal(t, "bob", data["username"])
	assert.Nil(t, data["account"])
	assert.Nil(t, data["address"])
	assert.Nil(t, data["preferences"])
	assert.Nil(t, data["profile"])
}

func TestCreateUserBindingFailureListsFields(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPost, "/users", `{"username":"bob","email":"not-an-email","gender":"robot"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	details := env["error"].(map[string]any)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "gender")
}

func TestCreateUserMalformedJSON(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPost, "/users", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUserDuplicateIsConflict(t *testing.T) {
	r := newTestRouter(&stubRepo{err: apperr.ErrDuplicateKey})

	w := doJSON(t, r, http.MethodPost, "/users", `{"username":"bob","email":"bob@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBulkRejectsEmptyList(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPost, "/users/bulk", `{"users":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBulkReturnsCount(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPost, "/users/bulk",
		`{"users":[{"username":"bob","email":"b@e.c"},{"username":"ann","email":"a@e.c"}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	meta := env["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["count"])
}

func TestGetUserInvalidID(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserNotFound(t *testing.T) {
	r := newTestRouter(&stubRepo{err: apperr.ErrNotFound})

	w := doJSON(t, r, http.MethodGet, "/users/42", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "record not found", env["message"])
}

func TestGetUserIncludesSubRecords(t *testing.T) {
	repo := &stubRepo{aggregate: &entity.UserAggregate{
		User: entity.User{ID: 42, Username: "bob", Email: "bob@example.com"},
		Account: &entity.Account{
			UserID: 42, Status: entity.StatusActive, Role: entity.RoleUser, Subscription: entity.SubscriptionFree,
		},
	}}
	r := newTestRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/users/42", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)
	account := data["account"].(map[string]any)
	assert.Equal(t, "active", account["status"])
	assert.Nil(t, data["profile"])
}

func TestSearchRejectsInvalidStatus(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodGet, "/users?status=frozen", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEmptyResultIsOK(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodGet, "/users?q=nobody", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)
	assert.Equal(t, float64(0), data["total"])
}

func TestUpdateUserUnknownKeysOnlyIsBadRequest(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPatch, "/users/42", `{"is_admin":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserIgnoresUnknownKeysAlongsideValidOnes(t *testing.T) {
	repo := &stubRepo{}
	r := newTestRouter(repo)

	w := doJSON(t, r, http.MethodPatch, "/users/42", `{"email":"new@example.com","is_admin":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.patched, 1)
	assert.Equal(t, "email", repo.patched[0].Column)
}

func TestDeleteUser(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodDelete, "/users/42", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAccountExistingRowIsConflict(t *testing.T) {
	r := newTestRouter(&stubRepo{err: apperr.ErrDuplicateKey})

	w := doJSON(t, r, http.MethodPost, "/users/42/account", `{"role":"admin"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateAccountReturnsMaterializedRow(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPut, "/users/42/account", `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)
	assert.Equal(t, "admin", data["role"])
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, "free", data["subscription"])
}

func TestCreateAccountRejectsBadEnumAtBinding(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPost, "/users/42/account", `{"status":"frozen"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePreferencesDefaultsInResponse(t *testing.T) {
	r := newTestRouter(&stubRepo{})

	w := doJSON(t, r, http.MethodPost, "/users/42/preferences", `{"language":"id"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]any)
	assert.Equal(t, "id", data["language"])
	assert.Equal(t, "UTC", data["timezone"])
	assert.Equal(t, true, data["email_notifications"])
	assert.Equal(t, false, data["sms_notifications"])
}

func TestPoolExhaustedIsServiceUnavailable(t *testing.T) {
	r := newTestRouter(&stubRepo{err: apperr.ErrPoolExhausted})

	w := doJSON(t, r, http.MethodGet, "/users/42", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
