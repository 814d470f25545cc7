package adapters

import (
	"fmt"
	"strings"

	"playlistformatter/internal/playlist"
)

// ApiAdapter defines the interface for adapting different music platform APIs
// to a common interface that the publisher can use
type ApiAdapter interface {
	// Authentication methods
	Authenticate() error
	IsAuthenticated() bool
	PlatformName() string

	// Playlist methods
	GetUserPlaylists() ([]playlist.RemotePlaylist, error)
	GetPlaylistItems(playlistID string) ([]playlist.RemoteTrack, error)
	CreateNewPlaylist(name string, description string) (playlist.RemotePlaylist, error)
	AddItemsToPlaylist(playlistID string, trackIDs []string) error

	// Search functionality
	SearchTracks(query string, limit int) ([]playlist.RemoteTrack, error)
}

// PlatformType represents the supported music platforms
type PlatformType string

const (
	SpotifyPlatform PlatformType = "spotify"
	YoutubePlatform PlatformType = "youtube"
)

// Credentials configures an adapter. Empty client values fall back to the
// platform's environment variables.
type Credentials struct {
	ClientID     string
	ClientSecret string
	CallbackPort int
}

// NewApiAdapter is a factory function that creates a new adapter for the specified platform
func NewApiAdapter(platform string, creds Credentials) (ApiAdapter, error) {
	switch PlatformType(strings.ToLower(platform)) {
	case SpotifyPlatform:
		return NewSpotifyAdapter(creds)
	case YoutubePlatform:
		return NewYouTubeAdapter(creds)
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
}
