package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"go-sweetshop/internal/model"
	"go-sweetshop/internal/repository"
	"go-sweetshop/pkg/token"
)

type fakeUserRepo struct {
	users map[uint]*model.User
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.EmailAddress == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func newAuthTestApp(t *testing.T) (*fiber.App, *token.Manager) {
	t.Helper()

	repo := &fakeUserRepo{users: map[uint]*model.User{
		1: {ID: 1, EmailAddress: "admin@sweetshop.com", IsAdministrator: true},
		2: {ID: 2, EmailAddress: "user@sweetshop.com"},
	}}
	tokens := token.NewManager("test-secret", "HS256", time.Minute)

	app := fiber.New()
	app.Get("/protected", RequireAuth(repo, tokens), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFrom(c)
		return c.JSON(fiber.Map{"user_id": principal.UserID, "is_administrator": principal.IsAdministrator})
	})
	app.Get("/admin", RequireAuth(repo, tokens), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, tokens
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestRequireAuth_MissingOrMalformedHeader(t *testing.T) {
	app, tokens := newAuthTestApp(t)
	valid, _ := tokens.Issue(1)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic " + valid},
		{"no scheme", valid},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range cases {
		resp := get(t, app, "/protected", tc.header)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tc.name, resp.StatusCode)
		}
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	app, _ := newAuthTestApp(t)

	expired := token.NewManager("test-secret", "HS256", -time.Minute)
	raw, _ := expired.Issue(1)

	resp := get(t, app, "/protected", "Bearer "+raw)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireAuth_UnknownSubject(t *testing.T) {
	app, tokens := newAuthTestApp(t)

	// Valid signature, but the account no longer exists
	raw, _ := tokens.Issue(99)
	resp := get(t, app, "/protected", "Bearer "+raw)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireAuth_SetsPrincipal(t *testing.T) {
	app, tokens := newAuthTestApp(t)

	raw, _ := tokens.Issue(2)
	resp := get(t, app, "/protected", "Bearer "+raw)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	// Scheme comparison is case-insensitive
	resp = get(t, app, "/protected", "bearer "+raw)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lowercase scheme: status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireAdmin(t *testing.T) {
	app, tokens := newAuthTestApp(t)

	adminToken, _ := tokens.Issue(1)
	userToken, _ := tokens.Issue(2)

	if resp := get(t, app, "/admin", "Bearer "+adminToken); resp.StatusCode != http.StatusOK {
		t.Fatalf("admin: status = %d, want 200", resp.StatusCode)
	}
	// Authenticated but not an admin: 403, distinct from 401
	if resp := get(t, app, "/admin", "Bearer "+userToken); resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin: status = %d, want 403", resp.StatusCode)
	}
	if resp := get(t, app, "/admin", ""); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", resp.StatusCode)
	}
}
