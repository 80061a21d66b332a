package requests

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"vegholic-api/apperror"
	"vegholic-api/models"
	"vegholic-api/services/auth"
)

// UserIDLocal is the Locals key the auth middleware stores the caller in.
const UserIDLocal = "userId"

// Bind parses the JSON body into req and runs its validate tags.
func Bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperror.InvalidArgument("invalid request body")
	}
	return models.Validate(req)
}

// UserID picks the acting user: the authenticated caller when the auth
// middleware ran, otherwise the id supplied in the request.
func UserID(c *fiber.Ctx, supplied string) (string, error) {
	if authed, ok := c.Locals(UserIDLocal).(string); ok && authed != "" {
		return authed, nil
	}
	if supplied == "" {
		return "", apperror.InvalidArgument("user_id is required")
	}
	return supplied, nil
}

// Context derives the per-request deadline and carries the authenticated
// caller, if any, so managers can check record ownership.
func Context(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := c.UserContext()
	if authed, ok := c.Locals(UserIDLocal).(string); ok && authed != "" {
		ctx = auth.WithActor(ctx, authed)
	}
	return context.WithTimeout(ctx, timeout)
}
