package correlation

import (
	"errors"

	"data-correlator/core/contract"
	"data-correlator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for correlation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the correlation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/correlate")
	group.Post("/", h.HandleRun)
	group.Get("/strategies", h.HandleCatalog)
	group.Get("/sources", h.HandleInspectSource)
	group.Get("/objects", h.HandleListObjects)
}

// HandleRun runs a correlation and returns its report.
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RunRequest
	if err := c.BodyParser(&req); err != nil {
		l.Warn("Invalid correlation request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	result, err := h.service.Run(c.Context(), req)
	if err != nil {
		return h.fail(c, l, "Correlation run failed", err)
	}

	return c.JSON(result)
}

// HandleCatalog lists the registered strategies and reporters.
func (h *Handler) HandleCatalog(c *fiber.Ctx) error {
	return c.JSON(h.service.Catalog())
}

// HandleInspectSource loads the source named by the ref query parameter and
// reports its size.
func (h *Handler) HandleInspectSource(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	info, err := h.service.InspectSource(c.Context(), c.Query("ref"))
	if err != nil {
		return h.fail(c, l, "Source inspection failed", err)
	}

	return c.JSON(info)
}

// HandleListObjects lists storage objects under the prefix query parameter.
func (h *Handler) HandleListObjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	names, err := h.service.ListObjects(c.Context(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, l, "Object listing failed", err)
	}

	return c.JSON(fiber.Map{"objects": names})
}

// fail answers 400 for caller mistakes and 500 for everything else.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, contract.ErrConfiguration) || errors.Is(err, contract.ErrTypeContract) {
		status = fiber.StatusBadRequest
		l.Warn(msg, zap.Error(err))
	} else {
		l.Error(msg, zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
