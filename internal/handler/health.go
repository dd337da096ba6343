package handler

import (
	"pdfquiz/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports service liveness and cache connectivity.
type HealthHandler struct {
	cache domain.Cache
}

func NewHealthHandler(cache domain.Cache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Check godoc
// @Summary Health check
// @Description Reports API liveness and session store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok"}
	if h.cache != nil {
		if err := h.cache.Ping(c.UserContext()); err != nil {
			status["cache"] = "unavailable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		status["cache"] = "ok"
	}
	return c.JSON(status)
}
