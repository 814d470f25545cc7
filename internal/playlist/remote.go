package playlist

import "time"

// RemoteTrack represents a track found on a music platform
type RemoteTrack struct {
	Name      string   `csv:"name"`
	Artists   []string `csv:"artists"`
	Album     string   `csv:"album"`
	ID        string   `csv:"id"`
	ArtistIDs []string `csv:"artist_ids"`
	AlbumID   string   `csv:"album_id"`
	URL       string   `csv:"url"`
}

// RemotePlaylist represents a playlist on a music platform
type RemotePlaylist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	CreatedAt   time.Time
}
