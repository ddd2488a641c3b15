package impl

import (
	"context"
	"log/slog"
	"testing"

	"frishta/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	srv := NewSongService(&fakeCatalog{}, slog.New(slog.DiscardHandler))

	categories, err := srv.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.MusicCategories, categories)

	// The returned slice is a copy; mutating it must not poison the set.
	categories[0] = "Mutated"
	again, err := srv.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pop", again[0])
}

func TestListSongsPropagatesCatalogError(t *testing.T) {
	srv := NewSongService(&fakeCatalog{err: errors.New("bucket gone")}, slog.New(slog.DiscardHandler))

	_, err := srv.ListSongs(context.Background())
	require.Error(t, err)
}

func TestSongsForCategories(t *testing.T) {
	catalog := &fakeCatalog{songs: []*entity.Song{
		{ID: "song-1", Category: "Jazz"},
		{ID: "song-2", Category: "Pop"},
		{ID: "song-3", Category: "Folk"},
		{ID: "song-4", Category: "Jazz"},
	}}
	srv := NewSongService(catalog, slog.New(slog.DiscardHandler))

	// Matching is case- and whitespace-insensitive.
	songs, err := srv.SongsForCategories(context.Background(), []string{"jazz ", "POP"})
	require.NoError(t, err)
	require.Len(t, songs, 3)
	assert.Equal(t, "song-1", songs[0].ID)
	assert.Equal(t, "song-2", songs[1].ID)
	assert.Equal(t, "song-4", songs[2].ID)

	none, err := srv.SongsForCategories(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
