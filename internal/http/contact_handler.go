package http

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"complymetrics/internal/contact"
)

// ContactCreateAction handles POST /api/v1/contact.
func ContactCreateAction(ctx *cartridge.Context) error {
	var input contact.SubmitInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	message, err := contact.Submit(ctx.DBManager, ctx.Logger, &input)
	if err != nil {
		if errors.Is(err, contact.ErrInvalid) {
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		ctx.Logger.Error("Contact submission failed", slog.Any("error", err))
		return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not save message",
		})
	}

	return ctx.Status(http.StatusCreated).JSON(fiber.Map{
		"id":      message.ID,
		"message": "thanks, we will get back to you",
	})
}
