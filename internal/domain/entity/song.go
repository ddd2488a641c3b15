package entity

// Song is a catalog entry derived from the media store. The catalog is a
// pure query from the core's perspective: entries are listed, filtered by
// category, and forwarded into notifications, never mutated.
type Song struct {
	ID            string
	Title         string
	Artist        string
	Category      string // One of the canonical music categories.
	AudioPath     string // Site-relative /media path.
	ThumbnailPath string // Site-relative /media path, empty when unpaired.
	AudioURL      string // Absolute URL when a public base URL is configured.
	ThumbnailURL  string
}
