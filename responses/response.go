package responses

import (
	"github.com/gofiber/fiber/v2"

	"vegholic-api/apperror"
)

type APIResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Result  *fiber.Map `json:"result"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidArgument:
		return fiber.StatusBadRequest
	case apperror.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func Send(c *fiber.Ctx, status int, message string, result *fiber.Map) error {
	return c.Status(status).JSON(APIResponse{
		Status:  status,
		Message: message,
		Result:  result,
	})
}

func OK(c *fiber.Ctx, message string, result fiber.Map) error {
	return Send(c, fiber.StatusOK, message, &result)
}

func Created(c *fiber.Ctx, message string, result fiber.Map) error {
	return Send(c, fiber.StatusCreated, message, &result)
}

// ErrorLocal is the Locals key holding the error behind a failed
// response, for the request logger.
const ErrorLocal = "responseError"

// Error writes err as an envelope. Only the short message of an
// apperror reaches the client.
func Error(c *fiber.Ctx, err error) error {
	return send(c, err, nil)
}

// ErrorWithResult is Error for failures that still carry a result, such
// as an order placed whose cart could not be cleared.
func ErrorWithResult(c *fiber.Ctx, err error, result fiber.Map) error {
	return send(c, err, &result)
}

func send(c *fiber.Ctx, err error, result *fiber.Map) error {
	c.Locals(ErrorLocal, err)
	status := StatusFor(apperror.KindOf(err))
	return Send(c, status, apperror.MessageOf(err), result)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Send(c, fiber.StatusBadRequest, message, nil)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Send(c, fiber.StatusUnauthorized, message, nil)
}
