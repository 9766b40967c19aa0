package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"notes-service/internal/domain"
	"notes-service/internal/domain/entities"
)

type stubGuard struct {
	users map[string]*entities.User
}

func (g stubGuard) Authenticate(_ context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	user, ok := g.users[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

func (g stubGuard) RequireRole(user *entities.User, role string) error {
	if !user.HasRole(role) {
		return domain.ErrForbidden
	}
	return nil
}

func newContext(target, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func ok(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func TestAuth(t *testing.T) {
	alice := entities.NewUser("alice", "hash")
	guard := stubGuard{users: map[string]*entities.User{"good": alice}}

	tests := []struct {
		name          string
		target        string
		authorization string
		wantErr       error
	}{
		{name: "bearer header", target: "/", authorization: "Bearer good"},
		{name: "lowercase scheme", target: "/", authorization: "bearer good"},
		{name: "query token", target: "/ws?token=good"},
		{name: "missing", target: "/", wantErr: domain.ErrUnauthorized},
		{name: "basic scheme", target: "/", authorization: "Basic good", wantErr: domain.ErrUnauthorized},
		{name: "unknown token", target: "/", authorization: "Bearer bad", wantErr: domain.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(tt.target, tt.authorization)
			err := Auth(guard)(ok)(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			user, found := UserFrom(c)
			require.True(t, found)
			assert.Equal(t, alice.Id, user.Id)
		})
	}
}

func TestRequireRole(t *testing.T) {
	guard := stubGuard{}

	c, _ := newContext("/", "")
	assert.ErrorIs(t, RequireRole(guard, domain.RoleAdmin)(ok)(c), domain.ErrUnauthorized)

	SetUser(c, entities.NewUser("alice", "hash"))
	assert.ErrorIs(t, RequireRole(guard, domain.RoleAdmin)(ok)(c), domain.ErrForbidden)

	admin := entities.NewUser("root", "hash")
	require.NoError(t, admin.ChangeRole(domain.RoleAdmin))
	SetUser(c, admin)
	assert.NoError(t, RequireRole(guard, domain.RoleAdmin)(ok)(c))
}

func TestGlobalLimit(t *testing.T) {
	mw := GlobalLimit(rate.NewLimiter(0, 1))

	c, _ := newContext("/", "")
	assert.NoError(t, mw(ok)(c))
	c, _ = newContext("/", "")
	assert.ErrorIs(t, mw(ok)(c), domain.ErrRateLimited)
}

func TestConcurrencyLimit(t *testing.T) {
	mw := ConcurrencyLimit(1)
	inner := func(c echo.Context) error {
		nested, _ := newContext("/", "")
		err := mw(ok)(nested)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusServiceUnavailable, he.Code)
		return ok(c)
	}

	c, rec := newContext("/", "")
	require.NoError(t, mw(inner)(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = newContext("/", "")
	assert.NoError(t, mw(ok)(c))
}
