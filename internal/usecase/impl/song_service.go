package impl

import (
	"context"
	"log/slog"

	deliverycontext "frishta/internal/delivery/context"
	"frishta/internal/domain/entity"
	"frishta/internal/domain/service"
	"frishta/internal/usecase"

	"github.com/pkg/errors"
)

// songService implements the SongUsecase interface over the media catalog.
type songService struct {
	catalog service.SongCatalog
	logger  *slog.Logger
}

// NewSongService is the constructor for songService.
func NewSongService(catalog service.SongCatalog, logger *slog.Logger) usecase.SongUsecase {
	return &songService{catalog: catalog, logger: logger}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *songService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListSongs returns the full catalog.
func (srv *songService) ListSongs(ctx context.Context) ([]*entity.Song, error) {
	songs, err := srv.catalog.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to load song catalog", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load song catalog")
	}

	return songs, nil
}

// ListCategories returns the canonical category set in display order.
func (srv *songService) ListCategories(_ context.Context) ([]string, error) {
	categories := make([]string, len(entity.MusicCategories))
	copy(categories, entity.MusicCategories)

	return categories, nil
}

// SongsForCategories filters the catalog down to the given categories.
func (srv *songService) SongsForCategories(ctx context.Context, categories []string) ([]*entity.Song, error) {
	songs, err := srv.catalog.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load song catalog")
	}

	wanted := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		wanted[entity.NormalizeCategoryKey(category)] = struct{}{}
	}

	matched := make([]*entity.Song, 0, len(songs))
	for _, song := range songs {
		if _, ok := wanted[entity.NormalizeCategoryKey(song.Category)]; ok {
			matched = append(matched, song)
		}
	}

	return matched, nil
}
