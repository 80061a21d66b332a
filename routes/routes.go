package routes

import "github.com/gofiber/fiber/v2"

// with puts the guard handlers in front of h.
func with(guard []fiber.Handler, h fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guard)+1)
	handlers = append(handlers, guard...)
	return append(handlers, h)
}
