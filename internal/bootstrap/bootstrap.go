// Package bootstrap arma las piezas que comparten el API y labctl a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/application/media"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
	"github.com/jhoicas/labinventaris/internal/domain/repository"
	"github.com/jhoicas/labinventaris/internal/infrastructure/blob"
	"github.com/jhoicas/labinventaris/pkg/config"
)

// Session traduce la configuración a la sesión del store.
func Session(cfg *config.Config) (inventory.Session, error) {
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return inventory.Session{}, fmt.Errorf("APP_TIMEZONE %q: %w", cfg.App.Timezone, err)
	}
	return inventory.Session{
		ProfileID: cfg.Profile.ID,
		DefaultProfile: entity.UserProfile{
			ID:   cfg.Profile.ID,
			Name: cfg.Profile.DefaultName,
			Role: cfg.Profile.DefaultRole,
		},
		Location:        loc,
		TimestampLayout: cfg.App.TimestampLayout,
	}, nil
}

// NewStore construye el store sobre gw. rec puede ser nil.
func NewStore(gw repository.Gateway, cfg *config.Config, log zerolog.Logger, rec inventory.Recorder) (*inventory.Store, error) {
	session, err := Session(cfg)
	if err != nil {
		return nil, err
	}
	return inventory.NewStore(gw, session,
		inventory.WithLogger(log),
		inventory.WithRecorder(rec),
		inventory.WithPlaceholderImage(cfg.App.PlaceholderImage),
		inventory.WithRollbackOnFailure(cfg.App.RollbackOnFail),
	), nil
}

// BlobStore elige el almacenamiento de imágenes según STORAGE_DRIVER.
func BlobStore(ctx context.Context, cfg config.StorageConfig) (media.BlobStore, error) {
	switch cfg.Driver {
	case "s3":
		return blob.NewS3Store(ctx, blob.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
			PublicURL: cfg.PublicURL,
		})
	default:
		return blob.NewFSStore(cfg.FSDir, cfg.PublicURL)
	}
}
