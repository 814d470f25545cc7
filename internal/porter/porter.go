package porter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/sahilm/fuzzy"

	"playlistformatter/internal/adapters"
	"playlistformatter/internal/playlist"
	"playlistformatter/internal/utils"
)

// BatchSize is the largest number of items added to a playlist per request
const BatchSize = 100

// ErrPlaylistNotFound is returned when no playlist of the user has the
// requested ID or name
var ErrPlaylistNotFound = errors.New("playlist not found")

// Porter publishes cleaned playlists through an adapter for a specific
// music platform
type Porter struct {
	adapter adapters.ApiAdapter
}

// NewPorter creates a new Porter using the specified adapter
func NewPorter(adapter adapters.ApiAdapter) *Porter {
	return &Porter{
		adapter: adapter,
	}
}

// NewPorterWithCredentials creates a new Porter for the named platform
func NewPorterWithCredentials(platform string, creds adapters.Credentials) (*Porter, error) {
	adapter, err := adapters.NewApiAdapter(platform, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create adapter for platform %s: %w", platform, err)
	}
	return NewPorter(adapter), nil
}

// Platform names the platform behind the adapter
func (s *Porter) Platform() string {
	return s.adapter.PlatformName()
}

// Authenticate delegates authentication to the adapter
func (s *Porter) Authenticate() error {
	return s.adapter.Authenticate()
}

// IsAuthenticated checks if the porter is authenticated
func (s *Porter) IsAuthenticated() bool {
	return s.adapter.IsAuthenticated()
}

// GetPlaylists retrieves all playlists via the adapter
func (s *Porter) GetPlaylists() ([]playlist.RemotePlaylist, error) {
	return s.adapter.GetUserPlaylists()
}

// ResolvePlaylist finds the user's playlist whose ID equals ref, or failing
// that whose name matches ref ignoring case.
func (s *Porter) ResolvePlaylist(ref string) (playlist.RemotePlaylist, error) {
	playlists, err := s.GetPlaylists()
	if err != nil {
		return playlist.RemotePlaylist{}, fmt.Errorf("failed to list playlists: %w", err)
	}
	for _, p := range playlists {
		if p.ID == ref {
			return p, nil
		}
	}
	ref = strings.TrimSpace(ref)
	for _, p := range playlists {
		if strings.EqualFold(strings.TrimSpace(p.Name), ref) {
			return p, nil
		}
	}
	return playlist.RemotePlaylist{}, fmt.Errorf("%w: %q", ErrPlaylistNotFound, ref)
}

// CreatePlaylist creates a new playlist
func (s *Porter) CreatePlaylist(name, description string) (playlist.RemotePlaylist, error) {
	if description == "" {
		description = fmt.Sprintf("Published with playlistformatter on %s", time.Now().Format("2006-01-02"))
	}
	return s.adapter.CreateNewPlaylist(name, description)
}

// PublishOptions controls where and how a document is published
type PublishOptions struct {
	// Name of the new playlist, defaults to the document name
	Name        string
	Description string
	// Playlist is the ID or name of an existing playlist to add to instead
	// of creating one
	Playlist    string
	SearchLimit int
}

// Match pairs a playlist track with the platform track chosen for it
type Match struct {
	Track  playlist.Track
	Remote playlist.RemoteTrack
	Score  int
}

// PublishReport describes the outcome of PublishDocument
type PublishReport struct {
	Playlist playlist.RemotePlaylist
	Added    []Match
	// Skipped holds matches already present in the target playlist
	Skipped []Match
	Missing []playlist.Track
}

// PublishDocument searches the platform for every track of doc and adds the
// matches to a playlist. Searching stops early when ctx is cancelled.
func (s *Porter) PublishDocument(ctx context.Context, doc *playlist.Document, opts PublishOptions) (*PublishReport, error) {
	if doc == nil || len(doc.Tracks) == 0 {
		return nil, fmt.Errorf("nothing to publish: %w", playlist.ErrExportWithoutData)
	}
	if !s.IsAuthenticated() {
		if err := s.adapter.Authenticate(); err != nil {
			return nil, err
		}
	}

	report := &PublishReport{}
	if opts.Playlist != "" {
		target, err := s.ResolvePlaylist(opts.Playlist)
		if err != nil {
			return nil, err
		}
		report.Playlist = target
	}

	var matches []Match
	for _, track := range doc.Tracks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, ok, err := s.MatchTrack(track, opts.SearchLimit)
		if err != nil {
			return nil, err
		}
		if !ok {
			slog.Info("no match", "track", track.String())
			report.Missing = append(report.Missing, track)
			continue
		}
		matches = append(matches, m)
	}

	present := make(map[string]bool)
	if report.Playlist.ID != "" {
		existing, err := s.adapter.GetPlaylistItems(report.Playlist.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get playlist tracks: %w", err)
		}
		for _, t := range existing {
			present[t.ID] = true
		}
		report.Playlist.TrackCount = len(existing)
	} else {
		name := opts.Name
		if name == "" {
			name = doc.Name()
		}
		created, err := s.CreatePlaylist(name, opts.Description)
		if err != nil {
			return nil, err
		}
		report.Playlist = created
	}

	var ids []string
	for _, m := range matches {
		if present[m.Remote.ID] {
			report.Skipped = append(report.Skipped, m)
			continue
		}
		present[m.Remote.ID] = true
		report.Added = append(report.Added, m)
		ids = append(ids, m.Remote.ID)
	}

	for start := 0; start < len(ids); start += BatchSize {
		end := min(start+BatchSize, len(ids))
		if err := s.adapter.AddItemsToPlaylist(report.Playlist.ID, ids[start:end]); err != nil {
			return nil, fmt.Errorf("error adding tracks to playlist: %w", err)
		}
	}
	report.Playlist.TrackCount += len(ids)

	slog.Info("published playlist",
		"platform", s.adapter.PlatformName(),
		"playlist", report.Playlist.ID,
		"added", len(report.Added),
		"skipped", len(report.Skipped),
		"missing", len(report.Missing),
	)
	return report, nil
}

// MatchTrack searches the platform for track and returns the best candidate.
// A candidate must fuzzy-match the title by name and the artist by artists or
// name.
func (s *Porter) MatchTrack(track playlist.Track, limit int) (Match, bool, error) {
	query := strings.TrimSpace(track.Artist + " " + track.Title)
	candidates, err := s.adapter.SearchTracks(query, limit)
	if err != nil {
		return Match{}, false, fmt.Errorf("search %q: %w", query, err)
	}
	remote, score, ok := BestMatch(track, candidates)
	if !ok {
		return Match{}, false, nil
	}
	return Match{Track: track, Remote: remote, Score: score}, true, nil
}

// BestMatch picks the candidate whose name best matches the track title,
// among those that also mention the artist.
func BestMatch(track playlist.Track, candidates []playlist.RemoteTrack) (playlist.RemoteTrack, int, bool) {
	if len(candidates) == 0 {
		return playlist.RemoteTrack{}, 0, false
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = simplify(c.Name)
	}

	artist := simplify(track.Artist)
	for _, m := range fuzzy.Find(simplify(track.Title), names) {
		c := candidates[m.Index]
		if artist == "" {
			return c, m.Score, true
		}
		credit := simplify(strings.Join(c.Artists, " ") + " " + c.Name)
		if len(fuzzy.Find(artist, []string{credit})) > 0 {
			return c, m.Score, true
		}
	}
	return playlist.RemoteTrack{}, 0, false
}

// simplify lower-cases s and keeps only letters and digits
func simplify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteReport writes the added platform tracks to a CSV file at path
func (r *PublishReport) WriteReport(path string) error {
	remotes := make([]playlist.RemoteTrack, 0, len(r.Added))
	for _, m := range r.Added {
		remotes = append(remotes, m.Remote)
	}
	headers := utils.StructToCsvHeader(reflect.TypeOf(playlist.RemoteTrack{}))
	if err := utils.WriteToCsvFile(path, headers, remotes); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
