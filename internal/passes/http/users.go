package http

import (
	"net/http"

	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/pkg/httpx"
	"github.com/aussiebroadwan/eventpass/pkg/passsdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister godoc
//
//	@Summary		Register User
//	@Description	Create a user and return a bearer token valid for 24 hours. Phone and email must be unique.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		passsdk.RegisterRequest			true	"name, phone, email"
//	@Success		201		{object}	passsdk.RegisterResponse		"id, token"
//	@Failure		400		{object}	httpx.ValidationErrorResponse	"validation errors"
//	@Failure		400		{object}	httpx.ErrorResponse				"phone or email already exists"
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req passsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var v validation
	v.check(!blank(req.Name), "name", "Name is required")
	v.check(!tooLong(req.Name), "name", "Name "+msgTooLong)
	v.check(!blank(req.Phone), "phone", "Phone is required")
	v.check(validEmail(req.Email), "email", "Valid email is required")
	if len(v) > 0 {
		httpx.WriteValidation(w, v)
		return
	}

	user, token, err := h.UserService.Register(r.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, passsdk.RegisterResponse{ID: user.ID, Token: token})
}

// HandleGet godoc
//
//	@Summary		Get User
//	@Description	Fetch a user by id.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int						true	"User ID"
//	@Success		200	{object}	passsdk.UserResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "User not found")
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, passsdk.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
