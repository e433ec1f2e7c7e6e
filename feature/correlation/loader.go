package correlation

import (
	"data-correlator/core/config"
	"data-correlator/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the correlation feature.
func NewFeature(db *gorm.DB, client storage.Client, store storage.Config, cfg config.Correlation, logger *zap.Logger) *Feature {
	svc := NewService(db, client, store, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "correlation"
}

// IsEnabled reports whether any source kind is available.
func (f *Feature) IsEnabled() bool {
	return f.service.db != nil || f.service.client != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service, the CLI runs through it.
func (f *Feature) Service() *Service {
	return f.service
}
