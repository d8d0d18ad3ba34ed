package middleware

import (
	"crowdfund/errs"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fiber error handler. Handlers return their
// errors instead of picking status codes; the kind decides the status and
// the full detail stays in the server log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	log.Printf("Error on %s %s: %v", c.Method(), c.Path(), err)

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return JsonResponse(c, fiberErr.Code, false, fiberErr.Message, nil)
	}

	status := fiber.StatusInternalServerError
	message := "Something went wrong."

	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = fiber.StatusUnprocessableEntity
		message = publicMessage(err, "Validation failed!")
	case errs.KindNotFound:
		status = fiber.StatusNotFound
		message = publicMessage(err, "Not found.")
	case errs.KindDuplicate:
		status = fiber.StatusConflict
		message = publicMessage(err, "Already exists.")
	case errs.KindUnauthorized:
		status = fiber.StatusUnauthorized
		message = "Unauthenticated"
	case errs.KindUpstream:
		status = fiber.StatusBadGateway
		message = "Upstream provider request failed."
	case errs.KindRetryable:
		status = fiber.StatusServiceUnavailable
		message = publicMessage(err, "Temporary condition, retry the request.")
	case errs.KindConfig:
		status = fiber.StatusInternalServerError
		message = "Service misconfigured."
	}

	return JsonResponse(c, status, false, message, nil)
}

// publicMessage exposes the kind-level message but never the wrapped cause.
func publicMessage(err error, fallback string) string {
	var e *errs.Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return fallback
}
