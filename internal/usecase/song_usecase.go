package usecase

import (
	"context"

	"frishta/internal/domain/entity"
)

// SongUsecase exposes the read-only song catalog.
type SongUsecase interface {
	// ListSongs returns the full catalog.
	ListSongs(ctx context.Context) ([]*entity.Song, error)

	// ListCategories returns the canonical category set in display order.
	ListCategories(ctx context.Context) ([]string, error)

	// SongsForCategories filters the catalog down to the given categories,
	// matched case- and whitespace-insensitively.
	SongsForCategories(ctx context.Context, categories []string) ([]*entity.Song, error)
}
