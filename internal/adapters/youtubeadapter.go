package adapters

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"playlistformatter/internal/playlist"
)

const (
	youtubePageSize = 50
	// YouTube quota limits insert bursts
	youtubeInsertDelay = 100 * time.Millisecond
)

// YouTubeAdapter adapts the YouTube API to our common adapter interface
type YouTubeAdapter struct {
	BaseAdapter
	service      *youtube.Service
	clientID     string
	clientSecret string
}

// NewYouTubeAdapter creates a new YouTubeAdapter
func NewYouTubeAdapter(creds Credentials) (*YouTubeAdapter, error) {
	clientID, clientSecret := creds.ClientID, creds.ClientSecret
	if clientID == "" {
		clientID = os.Getenv("YOUTUBE_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("YOUTUBE_CLIENT_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("youtube client ID and secret must be provided or set in environment variables")
	}

	return &YouTubeAdapter{
		BaseAdapter:  NewBaseAdapter("YouTube", creds.CallbackPort),
		clientID:     clientID,
		clientSecret: clientSecret,
	}, nil
}

// Authenticate handles user authentication with YouTube API
func (a *YouTubeAdapter) Authenticate() error {
	config := &oauth2.Config{
		ClientID:     a.clientID,
		ClientSecret: a.clientSecret,
		RedirectURL:  a.RedirectURL(),
		Scopes: []string{
			youtube.YoutubeReadonlyScope,
			youtube.YoutubeScope,
		},
		Endpoint: google.Endpoint,
	}

	authURL := config.AuthCodeURL(a.state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	err := a.WaitForCallback(authURL, func(r *http.Request) error {
		token, err := config.Exchange(r.Context(), r.FormValue("code"))
		if err != nil {
			return fmt.Errorf("error exchanging code for token: %w", err)
		}
		ctx := context.Background()
		service, err := youtube.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
		if err != nil {
			return fmt.Errorf("error creating YouTube client: %w", err)
		}
		a.service = service
		return nil
	})
	if err != nil {
		return fmt.Errorf("youtube login: %w", err)
	}

	a.SetAuthenticated(true)
	fmt.Println("YouTube authentication successful!")
	return nil
}

// GetUserPlaylists retrieves all playlists for the authenticated user
func (a *YouTubeAdapter) GetUserPlaylists() ([]playlist.RemotePlaylist, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var playlists []playlist.RemotePlaylist
	var pageToken string

	for {
		call := a.service.Playlists.List([]string{"snippet", "contentDetails"}).
			Mine(true).
			MaxResults(youtubePageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("error fetching playlists: %w", err)
		}

		for _, item := range response.Items {
			p := playlist.RemotePlaylist{ID: item.Id}
			if item.Snippet != nil {
				p.Name = item.Snippet.Title
				p.Description = item.Snippet.Description
				p.CreatedAt = publishedAt(item.Snippet.PublishedAt)
			}
			if item.ContentDetails != nil {
				p.TrackCount = int(item.ContentDetails.ItemCount)
			}
			playlists = append(playlists, p)
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return playlists, nil
}

// GetPlaylistItems retrieves all videos in a playlist
func (a *YouTubeAdapter) GetPlaylistItems(playlistID string) ([]playlist.RemoteTrack, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	var tracks []playlist.RemoteTrack
	var pageToken string

	for {
		call := a.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(youtubePageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("error fetching playlist items: %w", err)
		}

		for _, item := range response.Items {
			if item.ContentDetails == nil || item.Snippet == nil {
				continue
			}
			tracks = append(tracks, remoteVideo(
				item.ContentDetails.VideoId,
				item.Snippet.Title,
				item.Snippet.VideoOwnerChannelTitle,
				item.Snippet.VideoOwnerChannelId,
			))
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return tracks, nil
}

// CreateNewPlaylist creates a new private YouTube playlist
func (a *YouTubeAdapter) CreateNewPlaylist(name string, description string) (playlist.RemotePlaylist, error) {
	if err := a.CheckAuth(); err != nil {
		return playlist.RemotePlaylist{}, err
	}

	p := &youtube.Playlist{
		Snippet: &youtube.PlaylistSnippet{
			Title:       name,
			Description: description,
		},
		Status: &youtube.PlaylistStatus{
			PrivacyStatus: "private",
		},
	}

	response, err := a.service.Playlists.Insert([]string{"snippet", "status"}, p).Do()
	if err != nil {
		return playlist.RemotePlaylist{}, fmt.Errorf("error creating playlist: %w", err)
	}
	return playlist.RemotePlaylist{
		ID:          response.Id,
		Name:        response.Snippet.Title,
		Description: response.Snippet.Description,
		CreatedAt:   publishedAt(response.Snippet.PublishedAt),
	}, nil
}

// AddItemsToPlaylist adds videos to a YouTube playlist, one insert per video
func (a *YouTubeAdapter) AddItemsToPlaylist(playlistID string, trackIDs []string) error {
	if err := a.CheckAuth(); err != nil {
		return err
	}

	for i, id := range trackIDs {
		videoID := VideoID(id)
		item := &youtube.PlaylistItem{
			Snippet: &youtube.PlaylistItemSnippet{
				PlaylistId: playlistID,
				ResourceId: &youtube.ResourceId{
					Kind:    "youtube#video",
					VideoId: videoID,
				},
			},
		}

		if _, err := a.service.PlaylistItems.Insert([]string{"snippet"}, item).Do(); err != nil {
			return fmt.Errorf("error adding video %s to playlist: %w", videoID, err)
		}
		if i < len(trackIDs)-1 {
			time.Sleep(youtubeInsertDelay)
		}
	}

	return nil
}

// SearchTracks searches for videos on YouTube
func (a *YouTubeAdapter) SearchTracks(query string, limit int) ([]playlist.RemoteTrack, error) {
	if err := a.CheckAuth(); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > youtubePageSize {
		limit = youtubePageSize
	}

	response, err := a.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		VideoCategoryId("10").
		MaxResults(int64(limit)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("error searching for videos: %w", err)
	}

	tracks := make([]playlist.RemoteTrack, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		tracks = append(tracks, remoteVideo(item.Id.VideoId, item.Snippet.Title, item.Snippet.ChannelTitle, item.Snippet.ChannelId))
	}
	return tracks, nil
}

// VideoID extracts the video ID from a watch or short URL. Plain IDs are
// returned unchanged.
func VideoID(s string) string {
	if _, rest, ok := strings.Cut(s, "youtube.com/watch?v="); ok {
		id, _, _ := strings.Cut(rest, "&")
		return id
	}
	if _, rest, ok := strings.Cut(s, "youtu.be/"); ok {
		id, _, _ := strings.Cut(rest, "?")
		return id
	}
	return s
}

func remoteVideo(videoID, title, channel, channelID string) playlist.RemoteTrack {
	return playlist.RemoteTrack{
		Name:      title,
		Artists:   []string{channel},
		ID:        videoID,
		ArtistIDs: []string{channelID},
		URL:       fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID),
	}
}

func publishedAt(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
