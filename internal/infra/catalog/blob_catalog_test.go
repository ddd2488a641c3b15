package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"frishta/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMediaFile(t *testing.T, dir string, parts ...string) {
	t.Helper()

	full := filepath.Join(append([]string{dir}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
}

func newTestCatalog(t *testing.T, dir string, fallbackIndex bool) *blobCatalog {
	t.Helper()

	cfg := &config.Config{Catalog: &config.CatalogConfig{
		BucketURL:              "file://" + filepath.ToSlash(dir),
		PublicBaseURL:          "https://frishta.app/",
		ThumbnailFallbackIndex: fallbackIndex,
	}}

	sc, closeBucket, err := NewBlobCatalog(context.Background(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeBucket() })

	return sc.(*blobCatalog)
}

func TestListBuildsCatalog(t *testing.T) {
	dir := t.TempDir()
	writeMediaFile(t, dir, "songs", "morning_raga.mp3")
	writeMediaFile(t, dir, "songs", "night-drive.wav")
	writeMediaFile(t, dir, "songs", "notes.txt")
	writeMediaFile(t, dir, "thumbnails", "morning_raga.jpg")
	writeMediaFile(t, dir, "thumbnails", "cover.png")

	c := newTestCatalog(t, dir, false)
	songs, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)

	first := songs[0]
	assert.Equal(t, "song-1", first.ID)
	assert.Equal(t, "morning raga", first.Title)
	assert.Equal(t, "Frishta Artist", first.Artist)
	assert.Equal(t, "/media/songs/morning_raga.mp3", first.AudioPath)
	assert.Equal(t, "/media/thumbnails/morning_raga.jpg", first.ThumbnailPath)
	assert.Equal(t, "https://frishta.app/media/songs/morning_raga.mp3", first.AudioURL)
	assert.Equal(t, "https://frishta.app/media/thumbnails/morning_raga.jpg", first.ThumbnailURL)

	second := songs[1]
	assert.Equal(t, "night drive", second.Title)
	// No same-name thumbnail and no fallback configured.
	assert.Empty(t, second.ThumbnailPath)
	assert.Empty(t, second.ThumbnailURL)
}

func TestListCategoryRoundRobin(t *testing.T) {
	dir := t.TempDir()
	writeMediaFile(t, dir, "songs", "a.mp3")
	writeMediaFile(t, dir, "songs", "b.mp3")

	c := newTestCatalog(t, dir, false)
	songs, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "Pop", songs[0].Category)
	assert.Equal(t, "Rock", songs[1].Category)
}

func TestListCategoryOverrides(t *testing.T) {
	dir := t.TempDir()
	writeMediaFile(t, dir, "songs", "a.mp3")
	writeMediaFile(t, dir, "songs", "b.mp3")
	writeMediaFile(t, dir, "songs", "c.mp3")
	writeMediaFile(t, dir, "thumbnails", "shared.png")

	overrides := `{
		"a.mp3": "Jazz",
		"b": {"category": ["Unknown", "Blues"], "thumbnail": "shared.png"},
		"c.mp3": "Not A Genre"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song-categories.json"), []byte(overrides), 0o644))

	c := newTestCatalog(t, dir, false)
	songs, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 3)

	assert.Equal(t, "Jazz", songs[0].Category)
	assert.Equal(t, "Blues", songs[1].Category)
	assert.Equal(t, "/media/thumbnails/shared.png", songs[1].ThumbnailPath)
	// Invalid override falls back to the positional category.
	assert.Equal(t, "Jazz", songs[2].Category)
}

func TestListThumbnailFallbackIndex(t *testing.T) {
	dir := t.TempDir()
	writeMediaFile(t, dir, "songs", "a.mp3")
	writeMediaFile(t, dir, "songs", "b.mp3")
	writeMediaFile(t, dir, "thumbnails", "cover.png")

	c := newTestCatalog(t, dir, true)
	songs, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "/media/thumbnails/cover.png", songs[0].ThumbnailPath)
	assert.Equal(t, "/media/thumbnails/cover.png", songs[1].ThumbnailPath)
}

func TestListEmptyBucket(t *testing.T) {
	c := newTestCatalog(t, t.TempDir(), false)

	songs, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestNormalizeThumbnailPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "  ", want: ""},
		{name: "already media path", input: "/media/thumbnails/a.png", want: "/media/thumbnails/a.png"},
		{name: "missing leading slash", input: "media/thumbnails/a.png", want: "/media/thumbnails/a.png"},
		{name: "bare file name", input: "a.png", want: "/media/thumbnails/a.png"},
		{name: "windows separators", input: `covers\a.png`, want: "/media/thumbnails/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeThumbnailPath(tt.input))
		})
	}
}
