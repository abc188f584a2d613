package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"exportapi/internal/service"
)

// ListExports godoc
// @Summary      List past exports
// @Description  Metadata of completed exports, newest first.
// @Tags         export
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 10, max 100)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  service.HistoryListResult
// @Failure      400     {object}  errorPayload
// @Failure      401     {object}  errorPayload
// @Failure      500     {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/exports [get]
func ListExports(history service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit", nil)
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset", nil)
		}

		res, err := history.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, CodeInternal, "internal server error", nil)
		}
		return c.JSON(res)
	}
}
