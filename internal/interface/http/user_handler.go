package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/fiqriashiddiqi/user-registry/internal/application"
	"github.com/fiqriashiddiqi/user-registry/pkg/response"
	"github.com/fiqriashiddiqi/user-registry/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// userID parses the :id path parameter; a non-numeric id is a client error.
func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		return 0, false
	}
	return id, true
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	status, msg := statusFromError(err)
	if status >= http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Error[any](c, status, msg, nil)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := userapp.CreateUserInput{CoreInput: req.coreRequest.toInput()}
	if req.Account != nil {
		a := req.Account.toInput()
		in.Account = &a
	}
	if req.Address != nil {
		a := req.Address.toInput()
		in.Address = &a
	}
	if req.Preferences != nil {
		p := req.Preferences.toInput()
		in.Preferences = &p
	}
	if req.Profile != nil {
		p := req.Profile.toInput()
		in.Profile = &p
	}
	agg, err := h.Svc.CreateUser(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toAggregateResponse(agg), "user created", nil)
}

func (h *UserHandler) CreateBulk(c *gin.Context) {
	var req bulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ins := make([]userapp.CoreInput, 0, len(req.Users))
	for _, u := range req.Users {
		ins = append(ins, u.toInput())
	}
	users, err := h.Svc.CreateUsersBulk(c.Request.Context(), ins)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(*u))
	}
	response.Success(c, http.StatusCreated, out, "users created", map[string]any{"count": len(out)})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	agg, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toAggregateResponse(agg), "user", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	res, err := h.Svc.SearchUsers(c.Request.Context(), userapp.SearchInput{
		Query:        c.Query("q"),
		Status:       c.Query("status"),
		Role:         c.Query("role"),
		Subscription: c.Query("subscription"),
		City:         c.Query("city"),
		Province:     c.Query("province"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSearchResponse(res), "users", map[string]any{"total": res.Total})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdateUser(c.Request.Context(), id, patch); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"updated": true}, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "user deleted", nil)
}

func (h *UserHandler) CreateAccount(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.CreateAccount(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toAccountResponse(a), "account created", nil)
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.UpdateAccount(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountResponse(a), "account updated", nil)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteAccount(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "account deleted", nil)
}

func (h *UserHandler) CreateAddress(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.CreateAddress(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toAddressResponse(a), "address created", nil)
}

func (h *UserHandler) UpdateAddress(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.UpdateAddress(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toAddressResponse(a), "address updated", nil)
}

func (h *UserHandler) DeleteAddress(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteAddress(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "address deleted", nil)
}

func (h *UserHandler) CreatePreferences(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreatePreferences(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toPreferencesResponse(p), "preferences created", nil)
}

func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdatePreferences(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPreferencesResponse(p), "preferences updated", nil)
}

func (h *UserHandler) DeletePreferences(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeletePreferences(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "preferences deleted", nil)
}

func (h *UserHandler) CreateProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreateProfile(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toProfileResponse(p), "profile created", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateProfile(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProfileResponse(p), "profile updated", nil)
}

func (h *UserHandler) DeleteProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteProfile(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "profile deleted", nil)
}
