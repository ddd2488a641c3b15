package service

import (
	"context"

	"frishta/internal/domain/entity"
)

// SongCatalog lists the media store's songs. The core treats it as a pure
// query: results feed the /songs endpoint and the welcome notification.
type SongCatalog interface {
	// List returns every song in the catalog in stable (filename) order.
	List(ctx context.Context) ([]*entity.Song, error)
}
