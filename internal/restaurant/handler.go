package restaurant

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/wichananm65/qr-menu-backend/internal/auth"
)

type Handler struct {
	service       *Service
	issuer        *auth.Issuer
	adminEmail    string
	adminPassword string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type menuRequest struct {
	Menu []Category `json:"menu"`
}

func NewHandler(service *Service, issuer *auth.Issuer, adminEmail, adminPassword string) *Handler {
	return &Handler{
		service:       service,
		issuer:        issuer,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/auth/register", h.register)
	app.Post("/api/auth/login", h.login)
	app.Get("/api/public/menu/:id", h.getPublicMenu)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/restaurant/menu", h.getMenu)
	app.Post("/api/restaurant/menu", h.replaceMenu)
}

func (r registerRequest) isMissingRequiredFields() bool {
	return strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == ""
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.isMissingRequiredFields() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name, email and password are required"})
	}

	created, err := h.service.Register(c.UserContext(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists"})
		}
		log.Errorw("register restaurant failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to register restaurant"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Restaurant registered",
		"restaurant": sanitize(created),
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	principal := auth.Principal{}
	if h.isAdmin(payload.Email, payload.Password) {
		principal.Role = auth.RoleAdmin
	} else {
		rest, err := h.service.Authenticate(c.UserContext(), payload.Email, payload.Password)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
		}
		principal.Role = auth.RoleRestaurant
		principal.RestaurantID = rest.ID
	}

	signed, err := h.issuer.Issue(principal)
	if err != nil {
		log.Errorw("sign token failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	id := principal.RestaurantID
	if principal.IsAdmin() {
		id = auth.AdminID
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   signed,
		"role":    principal.Role,
		"id":      id,
	})
}

func (h *Handler) isAdmin(email, password string) bool {
	if h.adminEmail == "" || h.adminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(strings.ToLower(h.adminEmail))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.adminPassword)) == 1
	return emailOK && passOK
}

func (h *Handler) getPublicMenu(c *fiber.Ctx) error {
	rest, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Restaurant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load menu"})
	}

	return c.JSON(fiber.Map{
		"id":   rest.ID,
		"name": rest.Name,
		"menu": rest.Menu,
	})
}

func (h *Handler) getMenu(c *fiber.Ctx) error {
	p, err := auth.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if p.Role != auth.RoleRestaurant {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "restaurant token required"})
	}

	rest, err := h.service.GetByID(c.UserContext(), p.RestaurantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Restaurant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load menu"})
	}

	return c.JSON(fiber.Map{"menu": rest.Menu, "restaurantId": rest.ID})
}

func (h *Handler) replaceMenu(c *fiber.Ctx) error {
	p, err := auth.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if p.Role != auth.RoleRestaurant {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "restaurant token required"})
	}

	payload := new(menuRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	for _, cat := range payload.Menu {
		for _, item := range cat.Items {
			if item.Price < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "item price must not be negative"})
			}
		}
	}

	menu, err := h.service.ReplaceMenu(c.UserContext(), p.RestaurantID, payload.Menu)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Restaurant not found"})
		}
		log.Errorw("replace menu failed", "restaurantId", p.RestaurantID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to save menu"})
	}

	return c.JSON(fiber.Map{"message": "Menu updated", "menu": menu})
}
