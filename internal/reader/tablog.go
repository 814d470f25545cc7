package reader

import (
	"fmt"
	"log/slog"
	"strings"

	"playlistformatter/internal/playlist"
	"playlistformatter/internal/title"
)

// tabLogMarker starts the header line of a tab-log export
const tabLogMarker = "#"

// Tab-log columns: track number, title, artist, bpm, time, key, genre, date added.
const (
	tabLogTitle  = 1
	tabLogArtist = 2
)

// ReadTabLog builds a document from the lines of a tab-delimited export.
// The first line must be the "#" header. Consecutive duplicate tracks are
// dropped. Row numbers in errors are file lines, counting the header as line 1.
func ReadTabLog(lines []string) (*playlist.Document, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no lines", playlist.ErrEmptySource)
	}
	if !strings.HasPrefix(lines[0], tabLogMarker) {
		return nil, fmt.Errorf("%w: header line does not start with %q", playlist.ErrUnrecognizedLayout, tabLogMarker)
	}

	var tracks []playlist.Track
	for i, line := range lines[1:] {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= tabLogArtist {
			return nil, &playlist.RowError{Row: i + 2, Reason: fmt.Sprintf("expected at least %d tab-separated fields, got %d", tabLogArtist+1, len(fields))}
		}

		track := playlist.NewTrack(title.Case(fields[tabLogArtist]), title.Case(title.Normalize(fields[tabLogTitle])))
		if n := len(tracks); n > 0 && tracks[n-1].SameSong(track) {
			continue
		}
		tracks = append(tracks, track)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: only a header line was found", playlist.ErrEmptySource)
	}

	slog.Debug("read tab-log playlist", "lines", len(lines), "tracks", len(tracks))
	return &playlist.Document{Source: playlist.TabLog{}, Tracks: tracks}, nil
}
