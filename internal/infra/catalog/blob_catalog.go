// Package catalog builds the song catalog from a media bucket. The bucket is
// opened through gocloud.dev/blob, so local disk (file://) and cloud object
// stores share one code path.
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"

	"frishta/config"
	"frishta/internal/domain/entity"
	"frishta/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

const (
	songsPrefix      = "songs/"
	thumbnailsPrefix = "thumbnails/"
	overridesKey     = "song-categories.json"
)

var audioExtensions = map[string]struct{}{
	".mp3": {}, ".wav": {}, ".m4a": {}, ".aac": {}, ".ogg": {},
}

var thumbnailExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {},
}

// blobCatalog implements the service.SongCatalog interface over a blob bucket.
type blobCatalog struct {
	bucket        *blob.Bucket
	publicBaseURL string
	fallbackIndex bool
	logger        *slog.Logger
}

// NewBlobCatalog opens the configured bucket and returns it as a
// service.SongCatalog. The caller owns the returned close function.
func NewBlobCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.SongCatalog, func() error, error) {
	bucket, err := blob.OpenBucket(ctx, cfg.Catalog.BucketURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open media bucket")
	}

	c := &blobCatalog{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.Catalog.PublicBaseURL, "/"),
		fallbackIndex: cfg.Catalog.ThumbnailFallbackIndex,
		logger:        logger,
	}

	return c, bucket.Close, nil
}

// categoryOverride is one entry of song-categories.json. The file maps a song
// file name (or its base name) to either a bare category string or an object
// carrying category and thumbnail hints.
type categoryOverride struct {
	Category      string
	Categories    []string
	ThumbnailPath string
}

func (o *categoryOverride) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		o.Category = bare
		return nil
	}

	var obj struct {
		Category      json.RawMessage `json:"category"`
		ThumbnailPath string          `json:"thumbnailPath"`
		Thumbnail     string          `json:"thumbnail"`
		ThumbnailFile string          `json:"thumbnailFile"`
		ImagePath     string          `json:"imagePath"`
		Image         string          `json:"image"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	if len(obj.Category) > 0 {
		var single string
		if err := json.Unmarshal(obj.Category, &single); err == nil {
			o.Category = single
		} else {
			var many []string
			if err := json.Unmarshal(obj.Category, &many); err == nil {
				o.Categories = many
			}
		}
	}

	for _, candidate := range []string{obj.ThumbnailPath, obj.Thumbnail, obj.ThumbnailFile, obj.ImagePath, obj.Image} {
		if candidate != "" {
			o.ThumbnailPath = candidate
			break
		}
	}

	return nil
}

// List scans the bucket and assembles the full catalog. Songs are ordered by
// file name so the round-robin category fallback is stable across calls.
func (c *blobCatalog) List(ctx context.Context) ([]*entity.Song, error) {
	songFiles, err := c.listByExtension(ctx, songsPrefix, audioExtensions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list songs")
	}

	thumbnailFiles, err := c.listByExtension(ctx, thumbnailsPrefix, thumbnailExtensions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list thumbnails")
	}

	overrides, err := c.readOverrides(ctx)
	if err != nil {
		return nil, err
	}

	songs := make([]*entity.Song, 0, len(songFiles))
	for i, songFile := range songFiles {
		thumbnailPath := c.resolveThumbnail(songFile, i, thumbnailFiles, overrides)

		song := &entity.Song{
			ID:            "song-" + strconv.Itoa(i+1),
			Title:         formatTitle(songFile),
			Artist:        "Frishta Artist",
			Category:      resolveCategory(songFile, i, overrides),
			AudioPath:     toMediaPath("songs", songFile),
			ThumbnailPath: thumbnailPath,
		}
		song.AudioURL = c.toAbsoluteURL(song.AudioPath)
		if thumbnailPath != "" {
			song.ThumbnailURL = c.toAbsoluteURL(thumbnailPath)
		}

		songs = append(songs, song)
	}

	return songs, nil
}

func (c *blobCatalog) listByExtension(ctx context.Context, prefix string, extensions map[string]struct{}) ([]string, error) {
	var names []string

	iter := c.bucket.List(&blob.ListOptions{Prefix: prefix})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if obj.IsDir {
			continue
		}

		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		if _, ok := extensions[strings.ToLower(path.Ext(name))]; !ok {
			continue
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

func (c *blobCatalog) readOverrides(ctx context.Context) (map[string]categoryOverride, error) {
	raw, err := c.bucket.ReadAll(ctx, overridesKey)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return map[string]categoryOverride{}, nil
		}

		return nil, errors.Wrap(err, "failed to read category overrides")
	}

	overrides := map[string]categoryOverride{}
	if err := json.Unmarshal(raw, &overrides); err != nil {
		c.logger.Warn("ignoring malformed category overrides", slog.Any("error", err))

		return map[string]categoryOverride{}, nil
	}

	return overrides, nil
}

func lookupOverride(songFile string, overrides map[string]categoryOverride) (categoryOverride, bool) {
	if o, ok := overrides[songFile]; ok {
		return o, true
	}
	if o, ok := overrides[baseName(songFile)]; ok {
		return o, true
	}

	return categoryOverride{}, false
}

func resolveCategory(songFile string, index int, overrides map[string]categoryOverride) string {
	if o, ok := lookupOverride(songFile, overrides); ok {
		if entity.IsCanonicalCategory(o.Category) {
			return o.Category
		}
		for _, candidate := range o.Categories {
			if entity.IsCanonicalCategory(candidate) {
				return candidate
			}
		}
	}

	return entity.MusicCategories[index%len(entity.MusicCategories)]
}

func (c *blobCatalog) resolveThumbnail(songFile string, index int, thumbnailFiles []string, overrides map[string]categoryOverride) string {
	if o, ok := lookupOverride(songFile, overrides); ok {
		if normalized := normalizeThumbnailPath(o.ThumbnailPath); normalized != "" {
			return normalized
		}
	}

	songBase := strings.ToLower(baseName(songFile))
	for _, thumbnailFile := range thumbnailFiles {
		if strings.ToLower(baseName(thumbnailFile)) == songBase {
			return toMediaPath("thumbnails", thumbnailFile)
		}
	}

	if c.fallbackIndex && len(thumbnailFiles) > 0 {
		return toMediaPath("thumbnails", thumbnailFiles[index%len(thumbnailFiles)])
	}

	return ""
}

func normalizeThumbnailPath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	normalized := strings.ReplaceAll(trimmed, `\`, "/")
	if strings.HasPrefix(normalized, "/media/") {
		return normalized
	}
	if strings.HasPrefix(normalized, "media/") {
		return "/" + normalized
	}

	fileName := path.Base(normalized)
	if fileName == "." || fileName == "/" {
		return ""
	}

	return toMediaPath("thumbnails", fileName)
}

func formatTitle(fileName string) string {
	name := baseName(fileName)
	name = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, name)

	return strings.Join(strings.Fields(name), " ")
}

func baseName(fileName string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName))
}

func toMediaPath(folder, fileName string) string {
	return "/media/" + folder + "/" + url.PathEscape(fileName)
}

func (c *blobCatalog) toAbsoluteURL(mediaPath string) string {
	if c.publicBaseURL == "" {
		return ""
	}

	return c.publicBaseURL + mediaPath
}
