package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pouchain/docstore/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]string{
				{"id": "u1", "email": "a@example.com"},
				{"id": "u2", "email": "b@example.com"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key")
	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "b@example.com", users[1].Email)
}

func TestCreateUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])
		assert.Equal(t, true, body["email_confirm"])

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u9", "email": "new@example.com"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key")
	user, err := c.CreateUser(context.Background(), "new@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u9", user.ID)
}

func TestInviteUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/invite", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://app.example.com", body["redirect_to"])

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u5", "email": "invited@example.com"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key")
	user, err := c.InviteUser(context.Background(), "invited@example.com", "https://app.example.com")
	require.NoError(t, err)
	assert.Equal(t, "u5", user.ID)
}

func TestSendRecovery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/recover", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key")
	assert.NoError(t, c.SendRecovery(context.Background(), "a@example.com", ""))
}

func TestDeleteUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/auth/v1/admin/users/u3", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key")
	assert.NoError(t, c.DeleteUser(context.Background(), "u3"))
}

func TestTransportErrorIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "service-key")
	_, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, common.ErrorUpstreamUnavailable)
}

func TestNon2xxStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"msg":"email already registered"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key")
	_, err := c.CreateUser(context.Background(), "dup@example.com", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.NotErrorIs(t, err, common.ErrorUpstreamUnavailable)
}
