package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"vegholic-api/controllers/requests"
	"vegholic-api/responses"
)

// TokenParser validates a bearer token and returns the user it names.
type TokenParser interface {
	Parse(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and
// stores the caller's user id in Locals.
func AuthMiddleware(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return responses.Unauthorized(c, "No auth token, access denied")
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			return responses.Unauthorized(c, "Invalid authorization header format")
		}

		userID, err := parser.Parse(bearerToken[1])
		if err != nil {
			return responses.Unauthorized(c, "Token verification failed, access denied")
		}

		c.Locals(requests.UserIDLocal, userID)
		return c.Next()
	}
}
