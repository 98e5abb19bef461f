package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Every endpoint answers with the same envelope so the admin frontend can
// handle responses uniformly.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// PaginationMeta is the meta block attached to list responses.
type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	pages := int(total+int64(limit)-1) / limit
	return PaginationMeta{
		CurrentPage: page,
		Limit:       limit,
		TotalItems:  total,
		TotalPages:  pages,
	}
}

func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessList(c *fiber.Ctx, message string, data interface{}, meta PaginationMeta) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
	})
}

// ErrorWithDetails carries a structured payload (e.g. the ids that were not
// found) so callers can correct their input without guessing.
func ErrorWithDetails(c *fiber.Ctx, status int, message string, details interface{}) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Message: message,
		Errors:  details,
	})
}
