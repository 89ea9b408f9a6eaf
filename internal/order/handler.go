package order

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/wichananm65/qr-menu-backend/internal/auth"
)

type Handler struct {
	service  *Service
	renderer Renderer
}

type createOrderRequest struct {
	RestaurantID string   `json:"restaurantId"`
	Customer     Customer `json:"customer"`
	Items        []Item   `json:"items"`
	TotalPrice   float64  `json:"totalPrice"`
	Status       string   `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func NewHandler(service *Service, renderer Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// RegisterPublicRoutes mounts checkout, which QR customers call without a token.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/order/restaurant", h.createOrder)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/order/restaurant/:restaurantId", h.listOrders)
	app.Get("/api/order/notifications/:restaurantId", h.notifications)
	app.Patch("/api/order/:id/status", h.updateStatus)
	app.Delete("/api/order/cleanup/restaurant/:restaurantId", h.cleanupRestaurant)
	app.Delete("/api/order/cleanup/old", h.cleanupOld)
	app.Get("/api/order/:restaurantId/receipt/:orderId", h.receipt)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, replayed, err := h.service.PlaceOrder(c.UserContext(), PlaceOrderInput{
		RestaurantID:   payload.RestaurantID,
		Customer:       payload.Customer,
		Items:          payload.Items,
		TotalPrice:     payload.TotalPrice,
		Status:         payload.Status,
		IdempotencyKey: c.Get("Idempotency-Key"),
	})
	if err != nil {
		return respondError(c, "create order", err)
	}

	if replayed {
		return c.Status(fiber.StatusOK).JSON(created)
	}
	log.Infow("order created", "orderId", created.OrderID, "restaurantId", created.RestaurantID, "requestId", c.Locals("requestid"))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")
	if ferr := checkAccess(c, restaurantID); ferr != nil {
		return c.Status(ferr.Code).JSON(fiber.Map{"message": ferr.Message})
	}

	statuses, err := ParseStatusList(c.Query("status"))
	if err != nil {
		return respondError(c, "list orders", err)
	}

	orders, err := h.service.ListForRestaurant(c.UserContext(), restaurantID, statuses)
	if err != nil {
		return respondError(c, "list orders", err)
	}
	return c.JSON(orders)
}

func (h *Handler) notifications(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")
	if ferr := checkAccess(c, restaurantID); ferr != nil {
		return c.Status(ferr.Code).JSON(fiber.Map{"message": ferr.Message})
	}

	feed, err := h.service.Notifications(c.UserContext(), restaurantID)
	if err != nil {
		return respondError(c, "notifications", err)
	}
	return c.JSON(feed)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	p, err := auth.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	orderID := c.Params("id")
	existing, err := h.service.Get(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, "update status", err)
	}
	if !p.CanAccess(existing.RestaurantID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), orderID, payload.Status)
	if err != nil {
		return respondError(c, "update status", err)
	}
	return c.JSON(updated)
}

func (h *Handler) cleanupRestaurant(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")
	if ferr := checkAccess(c, restaurantID); ferr != nil {
		return c.Status(ferr.Code).JSON(fiber.Map{"message": ferr.Message})
	}

	deleted, err := h.service.CleanupRestaurant(c.UserContext(), restaurantID)
	if err != nil {
		return respondError(c, "cleanup restaurant", err)
	}
	log.Infow("restaurant orders deleted", "restaurantId", restaurantID, "deletedCount", deleted)
	return c.JSON(fiber.Map{
		"message":      fmt.Sprintf("Deleted %d orders for restaurant", deleted),
		"deletedCount": deleted,
	})
}

func (h *Handler) cleanupOld(c *fiber.Ctx) error {
	p, err := auth.PrincipalFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !p.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin token required"})
	}

	days, err := ParseRetentionDays(c.Query("days"))
	if err != nil {
		return respondError(c, "cleanup old orders", err)
	}

	deleted, err := h.service.CleanupOlderThan(c.UserContext(), days)
	if err != nil {
		return respondError(c, "cleanup old orders", err)
	}
	log.Infow("old orders deleted", "days", days, "deletedCount", deleted)
	return c.JSON(fiber.Map{
		"message":      fmt.Sprintf("Deleted %d orders older than %d days", deleted, days),
		"deletedCount": deleted,
	})
}

func (h *Handler) receipt(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")
	if ferr := checkAccess(c, restaurantID); ferr != nil {
		return c.Status(ferr.Code).JSON(fiber.Map{"message": ferr.Message})
	}

	ord, err := h.service.GetForRestaurant(c.UserContext(), restaurantID, c.Params("orderId"))
	if err != nil {
		return respondError(c, "receipt", err)
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, ord); err != nil {
		log.Errorw("render receipt failed", "orderId", ord.OrderID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to render receipt"})
	}

	c.Set(fiber.HeaderContentType, h.renderer.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", h.renderer.FileName(ord)))
	return c.Send(buf.Bytes())
}

// checkAccess admits the admin and the restaurant that owns restaurantID.
func checkAccess(c *fiber.Ctx, restaurantID string) *fiber.Error {
	p, err := auth.PrincipalFromCtx(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	if !p.CanAccess(restaurantID) {
		return fiber.ErrForbidden
	}
	return nil
}

func respondError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	case errors.Is(err, ErrRestaurantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Restaurant not found"})
	case errors.Is(err, ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		log.Errorw(op+" failed", "error", err, "requestId", c.Locals("requestid"))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
	}
}
