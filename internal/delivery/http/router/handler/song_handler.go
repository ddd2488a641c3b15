package handler

import (
	"log/slog"
	"net/http"

	"frishta/internal/delivery/http/response"
	"frishta/internal/domain/entity"
	"frishta/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SongHandler holds dependencies for the catalog handlers.
type SongHandler struct {
	uc     usecase.SongUsecase
	logger *slog.Logger
}

// NewSongHandler is the constructor for SongHandler, injected by Fx.
func NewSongHandler(uc usecase.SongUsecase, logger *slog.Logger) *SongHandler {
	return &SongHandler{
		uc:     uc,
		logger: logger,
	}
}

type songResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Category      string `json:"category"`
	AudioPath     string `json:"audioPath"`
	ThumbnailPath string `json:"thumbnailPath,omitempty"`
	AudioURL      string `json:"audioUrl,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
}

func toSongResponses(songs []*entity.Song) []songResponse {
	out := make([]songResponse, 0, len(songs))
	for _, song := range songs {
		out = append(out, songResponse{
			ID:            song.ID,
			Title:         song.Title,
			Artist:        song.Artist,
			Category:      song.Category,
			AudioPath:     song.AudioPath,
			ThumbnailPath: song.ThumbnailPath,
			AudioURL:      song.AudioURL,
			ThumbnailURL:  song.ThumbnailURL,
		})
	}

	return out
}

// ListSongs returns the full catalog.
func (h *SongHandler) ListSongs(c echo.Context) error {
	songs, err := h.uc.ListSongs(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string][]songResponse{"songs": toSongResponses(songs)}, "")
}

// ListCategories returns the canonical category set.
func (h *SongHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string][]string{"categories": categories}, "")
}
