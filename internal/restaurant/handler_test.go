package restaurant

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/wichananm65/qr-menu-backend/internal/auth"
)

// makeApp wires the handler behind a bootstrap middleware that turns the
// X-Role / X-Restaurant-ID headers into the jwt.Token the real middleware
// would have stored.
func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-Role"); role != "" {
			claims := jwt.MapClaims{"role": role, "id": c.Get("X-Restaurant-ID")}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func newTestHandler(seed []Restaurant) (*Handler, *Service) {
	svc := NewService(NewInMemoryRepository(seed))
	return NewHandler(svc, auth.NewIssuer("test-secret", time.Hour), "admin@example.com", "admin-pass"), svc
}

func TestRegisterAndLogin(t *testing.T) {
	h, _ := newTestHandler(nil)
	app := makeApp(h)

	body := `{"name":"Baan Thai","email":"owner@example.com","password":"secret"}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "password") {
		t.Fatalf("register response leaked password: %s", string(b))
	}

	req2 := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d", res2.StatusCode)
	}

	login := `{"email":"owner@example.com","password":"secret"}`
	req3 := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(login))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on login, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"role":"restaurant"`) || !strings.Contains(string(b3), `"token"`) {
		t.Fatalf("unexpected login body %s", string(b3))
	}

	bad := `{"email":"owner@example.com","password":"nope"}`
	req4 := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(bad))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 on bad password, got %d", res4.StatusCode)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	h, _ := newTestHandler(nil)
	app := makeApp(h)

	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{"email":"a@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestLogin_Admin(t *testing.T) {
	h, _ := newTestHandler(nil)
	app := makeApp(h)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"admin-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin login, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"role":"admin"`) || !strings.Contains(string(b), `"id":"admin"`) {
		t.Fatalf("unexpected admin login body %s", string(b))
	}
}

func TestMenuRoutes(t *testing.T) {
	h, _ := newTestHandler([]Restaurant{{ID: "r-1", Name: "Cafe", Email: "c@example.com", Menu: []Category{}}})
	app := makeApp(h)

	menu := `{"menu":[{"category":"Drinks","items":[{"name":"Tea","price":20}]}]}`
	req := httptest.NewRequest("POST", "/api/restaurant/menu", strings.NewReader(menu))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", "restaurant")
	req.Header.Set("X-Restaurant-ID", "r-1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on menu save, got %d", res.StatusCode)
	}

	req2 := httptest.NewRequest("GET", "/api/public/menu/r-1", nil)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on public menu, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), "Tea") {
		t.Fatalf("public menu missing saved item: %s", string(b2))
	}

	req3 := httptest.NewRequest("GET", "/api/public/menu/unknown", nil)
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown restaurant, got %d", res3.StatusCode)
	}

	req4 := httptest.NewRequest("GET", "/api/restaurant/menu", nil)
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res4.StatusCode)
	}

	req5 := httptest.NewRequest("GET", "/api/restaurant/menu", nil)
	req5.Header.Set("X-Role", "admin")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for admin on restaurant menu, got %d", res5.StatusCode)
	}

	bad := `{"menu":[{"category":"Drinks","items":[{"name":"Tea","price":-1}]}]}`
	req6 := httptest.NewRequest("POST", "/api/restaurant/menu", strings.NewReader(bad))
	req6.Header.Set("Content-Type", "application/json")
	req6.Header.Set("X-Role", "restaurant")
	req6.Header.Set("X-Restaurant-ID", "r-1")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", res6.StatusCode)
	}
}
