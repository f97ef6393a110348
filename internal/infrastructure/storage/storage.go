package storage

import (
	"fmt"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
)

// New escolhe o blob store pelo driver configurado
func New(cfg config.BlobConfig, logger ports.Logger) (ports.BlobStore, error) {
	switch cfg.Driver {
	case config.BlobDriverCloudinary:
		store, err := NewCloudinaryStore(cfg.CloudinaryURL, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BlobDriverLocal:
		store, err := NewLocalStore(cfg.UploadsDir, cfg.PublicURL, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
