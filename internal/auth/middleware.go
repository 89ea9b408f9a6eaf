package auth

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

// contextKey is where jwtware stores the parsed token.
const contextKey = "user"

// Middleware validates the bearer token on every route registered after it.
func Middleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ContextKey: contextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

// PrincipalFromCtx extracts the caller from the JWT stored in
// c.Locals("user"). Handlers across packages share it.
func PrincipalFromCtx(c *fiber.Ctx) (Principal, error) {
	tok, ok := c.Locals(contextKey).(*jwt.Token)
	if !ok || tok == nil {
		return Principal{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fiber.ErrUnauthorized
	}

	role, _ := claims["role"].(string)
	id, _ := claims["id"].(string)

	switch Role(role) {
	case RoleAdmin:
		return Principal{Role: RoleAdmin}, nil
	case RoleRestaurant:
		if id == "" {
			return Principal{}, fiber.ErrUnauthorized
		}
		return Principal{Role: RoleRestaurant, RestaurantID: id}, nil
	default:
		return Principal{}, fiber.ErrUnauthorized
	}
}
