package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/eventpass/pkg/passsdk"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	t.Run("success returns id and token", func(t *testing.T) {
		out := env.register(t, "A", "1111111111", "a@x.com")
		require.Positive(t, out.ID)

		// The token is accepted by authenticated endpoints
		rec := env.do(t, http.MethodGet, "/passes", out.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("duplicate phone", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/register", "", passsdk.RegisterRequest{Name: "B", Phone: "1111111111", Email: "b@x.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Phone or email already exists", decodeError(t, rec))
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/register", "", passsdk.RegisterRequest{Name: "B", Phone: "2222222222", Email: "a@x.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Phone or email already exists", decodeError(t, rec))
	})

	t.Run("validation errors", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/register", "", passsdk.RegisterRequest{Email: "not-an-email"})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		fields := decodeFields(t, rec)
		require.Equal(t, "Name is required", fields["name"])
		require.Equal(t, "Phone is required", fields["phone"])
		require.Equal(t, "Valid email is required", fields["email"])
	})

	t.Run("name too long", func(t *testing.T) {
		name := strings.Repeat("é", 201)
		rec := env.do(t, http.MethodPost, "/users/register", "", passsdk.RegisterRequest{Name: name, Phone: "3333333333", Email: "c@x.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Name must be at most 200 characters", decodeFields(t, rec)["name"])
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/users/register", "", "{")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Invalid JSON body", decodeError(t, rec))
	})
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	reg := env.register(t, "Ada", "3333333333", "ada@x.com")

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/users/%d", reg.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user passsdk.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, reg.ID, user.ID)
	require.Equal(t, "Ada", user.Name)
	require.Equal(t, "3333333333", user.Phone)
	require.Equal(t, "ada@x.com", user.Email)

	rec = env.do(t, http.MethodGet, "/users/9999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User not found", decodeError(t, rec))

	rec = env.do(t, http.MethodGet, "/users/abc", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidEmail(t *testing.T) {
	require.True(t, validEmail("a@x.com"))
	require.False(t, validEmail("a@x"))
	require.False(t, validEmail("Ada <a@x.com>"))
	require.False(t, validEmail(""))
}
