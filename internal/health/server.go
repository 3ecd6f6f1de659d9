// Package health exposes the liveness endpoint PaaS platforms probe to keep
// the bot process alive. Unrelated to the dialog itself.
package health

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Serve runs the liveness responder on the given address. It blocks, so
// callers start it on its own goroutine.
func Serve(addr string, logger *zap.Logger) error {
	app := fiber.New(fiber.Config{
		AppName:               "hr-bot",
		DisableStartupMessage: true,
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("HR Bot is alive 🚀")
	})

	logger.Info("liveness responder listening", zap.String("addr", addr))

	return app.Listen(addr)
}
