package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination reads page/limit query params, falling back to 1/10 when they
// are absent or not numeric. No upper bound is enforced here.
func Pagination(c *fiber.Ctx) (page, limit, offset int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	offset = (page - 1) * limit
	return page, limit, offset
}
