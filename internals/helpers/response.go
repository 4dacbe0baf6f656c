// file: internals/helpers/response.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusConflict:
		return "CONFLICT"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: error generic (bukan validasi)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: statusToErrorCode(status),
	})
}

// JsonValidationError: khusus error validasi (422)
func JsonValidationError(c *fiber.Ctx, err error) error {
	fieldErrors := map[string][]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], fe.Tag())
		}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Success:   false,
		Message:   "validation failed",
		ErrorCode: "VALIDATION_ERROR",
		Errors:    fieldErrors,
	})
}

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonOK: response sukses generic (GET detail, dsb)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonCreated: response sukses create (POST)
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonUpdated: response sukses update (PATCH/PUT)
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "updated"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonDeleted: response sukses delete (DELETE)
func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "deleted"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonList: list dengan pagination (GET /list dsb)
func JsonList(c *fiber.Ctx, message string, data any, pagination *Pagination) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	body := fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
	if pagination != nil {
		body["pagination"] = pagination
	}
	return c.Status(fiber.StatusOK).JSON(body)
}
