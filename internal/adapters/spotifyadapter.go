package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"playlistformatter/internal/playlist"
)

const spotifyPageSize = 50

// SpotifyAdapter adapts the Spotify API to our common adapter interface
type SpotifyAdapter struct {
	BaseAdapter
	client       *spotify.Client
	clientID     string
	clientSecret string
}

// NewSpotifyAdapter creates a new SpotifyAdapter
func NewSpotifyAdapter(creds Credentials) (*SpotifyAdapter, error) {
	clientID, clientSecret := creds.ClientID, creds.ClientSecret
	if clientID == "" {
		clientID = os.Getenv("SPOTIFY_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("SPOTIFY_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify client ID and secret must be provided or set in environment variables")
	}

	return &SpotifyAdapter{
		BaseAdapter:  NewBaseAdapter("Spotify", creds.CallbackPort),
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

// Authenticate handles user authentication with Spotify
func (a *SpotifyAdapter) Authenticate() error {
	auth := spotifyauth.New(
		spotifyauth.WithRedirectURL(a.RedirectURL()),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadPrivate,
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopePlaylistModifyPrivate,
			spotifyauth.ScopePlaylistModifyPublic,
		),
		spotifyauth.WithClientID(a.clientID),
		spotifyauth.WithClientSecret(a.clientSecret),
	)

	err := a.WaitForCallback(auth.AuthURL(a.state), func(r *http.Request) error {
		tok, err := auth.Token(r.Context(), a.state, r)
		if err != nil {
			return fmt.Errorf("couldn't get token: %w", err)
		}
		a.client = spotify.New(auth.Client(context.Background(), tok))
		return nil
	})
	if err != nil {
		return fmt.Errorf("spotify login: %w", err)
	}
	a.SetAuthenticated(true)

	user, err := a.client.CurrentUser(context.Background())
	if err != nil {
		a.SetAuthenticated(false)
		return fmt.Errorf("authentication failed: %w", err)
	}

	slog.Info("spotify login", "user", user.ID)
	fmt.Println("You are logged in as:", user.ID)
	return nil
}

// GetUserPlaylists retrieves all playlists for the authenticated user
func (a *SpotifyAdapter) GetUserPlaylists() ([]playlist.RemotePlaylist, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	var playlists []playlist.RemotePlaylist
	offset := 0

	for {
		page, err := a.client.CurrentUsersPlaylists(ctx, spotify.Limit(spotifyPageSize), spotify.Offset(offset))
		if err != nil {
			return nil, fmt.Errorf("error getting playlists: %w", err)
		}

		for _, p := range page.Playlists {
			playlists = append(playlists, playlist.RemotePlaylist{
				ID:          string(p.ID),
				Name:        p.Name,
				Description: p.Description,
				TrackCount:  int(p.Tracks.Total),
			})
		}

		if len(page.Playlists) < spotifyPageSize {
			break
		}
		offset += spotifyPageSize
	}

	return playlists, nil
}

// GetPlaylistItems retrieves all tracks in a playlist
func (a *SpotifyAdapter) GetPlaylistItems(playlistID string) ([]playlist.RemoteTrack, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	var tracks []playlist.RemoteTrack
	offset := 0

	for {
		page, err := a.client.GetPlaylistItems(
			ctx,
			spotify.ID(playlistID),
			spotify.Limit(spotifyPageSize),
			spotify.Offset(offset),
		)
		if err != nil {
			return nil, fmt.Errorf("error getting playlist items: %w", err)
		}

		for _, item := range page.Items {
			// episodes and local files have no track
			if item.Track.Track == nil {
				continue
			}
			tracks = append(tracks, remoteSpotifyTrack(*item.Track.Track))
		}

		if len(page.Items) < spotifyPageSize {
			break
		}
		offset += spotifyPageSize
	}

	return tracks, nil
}

// CreateNewPlaylist creates a new private Spotify playlist
func (a *SpotifyAdapter) CreateNewPlaylist(name string, description string) (playlist.RemotePlaylist, error) {
	if err := a.CheckAuth(); err != nil {
		return playlist.RemotePlaylist{}, err
	}

	ctx := context.Background()
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return playlist.RemotePlaylist{}, fmt.Errorf("error getting current user: %w", err)
	}

	p, err := a.client.CreatePlaylistForUser(ctx, user.ID, name, description, false, false)
	if err != nil {
		return playlist.RemotePlaylist{}, fmt.Errorf("error creating playlist: %w", err)
	}

	return playlist.RemotePlaylist{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   time.Now(),
	}, nil
}

// AddItemsToPlaylist adds tracks to a Spotify playlist
func (a *SpotifyAdapter) AddItemsToPlaylist(playlistID string, trackIDs []string) error {
	if err := a.CheckAuth(); err != nil {
		return err
	}

	ids := make([]spotify.ID, 0, len(trackIDs))
	for _, id := range trackIDs {
		ids = append(ids, spotify.ID(id))
	}

	if _, err := a.client.AddTracksToPlaylist(context.Background(), spotify.ID(playlistID), ids...); err != nil {
		return fmt.Errorf("error adding tracks to playlist: %w", err)
	}
	return nil
}

// SearchTracks searches for tracks on Spotify
func (a *SpotifyAdapter) SearchTracks(query string, limit int) ([]playlist.RemoteTrack, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > spotifyPageSize {
		limit = spotifyPageSize
	}

	results, err := a.client.Search(context.Background(), query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("error searching tracks: %w", err)
	}
	if results.Tracks == nil {
		return nil, nil
	}

	tracks := make([]playlist.RemoteTrack, 0, len(results.Tracks.Tracks))
	for _, item := range results.Tracks.Tracks {
		tracks = append(tracks, remoteSpotifyTrack(item))
	}
	return tracks, nil
}

func remoteSpotifyTrack(t spotify.FullTrack) playlist.RemoteTrack {
	var names, ids []string
	for _, artist := range t.Artists {
		names = append(names, artist.Name)
		ids = append(ids, string(artist.ID))
	}
	return playlist.RemoteTrack{
		Name:      t.Name,
		Artists:   names,
		Album:     t.Album.Name,
		ID:        string(t.ID),
		ArtistIDs: ids,
		AlbumID:   string(t.Album.ID),
		URL:       fmt.Sprintf("https://open.spotify.com/track/%s", t.ID),
	}
}
