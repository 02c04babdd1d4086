package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresIdentity(t *testing.T) {
	user := User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Role: "USER"}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{
			"user":       user,
			"token":      "test-token",
			"expires_in": 86400,
		}, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, "test-token", c.Token())
	require.NotNil(t, c.CurrentIdentity())
	assert.Equal(t, user.ID, c.CurrentIdentity().ID)
}

func TestLoginRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid email or password", nil, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	assert.True(t, IsKind(err, KindUnauthenticated))
	assert.Empty(t, c.Token())
	assert.Nil(t, c.CurrentIdentity())
}

func TestExpiredTokenDropsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid or expired token", nil, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	c.setIdentity("stale-token", &User{ID: uuid.New()})

	_, err := c.Me(context.Background())
	assert.True(t, IsKind(err, KindUnauthenticated))

	// The stale session is gone; the next call goes out anonymous.
	assert.Empty(t, c.Token())
	assert.Nil(t, c.CurrentIdentity())
}

func TestLogoutIsLocal(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.setIdentity("token", &User{ID: uuid.New()})
	c.Logout()

	assert.Empty(t, c.Token())
	assert.Nil(t, c.CurrentIdentity())
	assert.Zero(t, requests)
}

func TestErrorKindMapping(t *testing.T) {
	cases := []struct {
		name       string
		statusCode int
		errs       interface{}
		want       Kind
	}{
		{"forbidden", http.StatusForbidden, nil, KindUnauthorized},
		{"not found", http.StatusNotFound, nil, KindNotFound},
		{"validation", http.StatusBadRequest, nil, KindValidation},
		{"conflict", http.StatusConflict, map[string]string{"code": "SEAT_CONFLICT"}, KindConflict},
		{"invalid state", http.StatusConflict, map[string]string{"code": "INVALID_STATE"}, KindInvalidState},
		{"internal", http.StatusInternalServerError, nil, KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tc.statusCode, "nope", nil, tc.errs)
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.Genres(context.Background())
			require.Error(t, err)
			assert.True(t, IsKind(err, tc.want), "expected %s, got %v", tc.want, err)
		})
	}
}

func TestNetworkErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL)
	_, err := c.Genres(context.Background())
	assert.True(t, IsKind(err, KindNetwork))
}
