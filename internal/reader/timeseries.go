package reader

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"playlistformatter/internal/playlist"
	"playlistformatter/internal/title"
)

const (
	fieldName      = "name"
	fieldArtist    = "artist"
	fieldStartTime = "start time"
)

// minPlayDuration is the shortest play duration a track is given.
const minPlayDuration = 60 * time.Second

// seriesState accumulates tracks during a single ReadTimeSeries call.
type seriesState struct {
	base            time.Time
	started         bool
	previousElapsed time.Duration
	tracks          []playlist.Track
}

// ReadTimeSeries builds a document from header-keyed rows of a time-series log.
//
// The first row is taken as an info row carrying the playlist name and date
// when its start time is not a clock time. Adjacent rows with the same artist
// and title are merged and their play durations summed. Each track's play
// duration is the time until the next track started, except for the last
// track, which keeps the gap that preceded it.
//
// Row numbers in errors are file lines, counting the header as line 1.
func ReadTimeSeries(rows []map[string]string) (*playlist.Document, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows after the header", playlist.ErrEmptySource)
	}

	source := playlist.TimeSeries{}
	first := 0
	if name, date, ok := infoRow(rows[0]); ok {
		source.Name = name
		source.Date = date
		first = 1
		slog.Debug("time-series info row", "name", name, "date", date)
	}

	var state seriesState
	for i := first; i < len(rows); i++ {
		if err := state.add(i+2, rows[i]); err != nil {
			return nil, err
		}
	}
	if len(state.tracks) == 0 {
		return nil, fmt.Errorf("%w: only an info row was found", playlist.ErrEmptySource)
	}
	state.shiftPlayDurations()

	slog.Debug("read time-series playlist", "rows", len(rows), "tracks", len(state.tracks))
	return &playlist.Document{Source: source, Tracks: state.tracks}, nil
}

// infoRow reports whether row is a metadata row rather than a track. A row
// with a dated start time ("10.01.2019, 20.00.00"), no artist, or a start
// time that is not a clock time is metadata.
func infoRow(row map[string]string) (name, date string, ok bool) {
	rawName, hasName := row[fieldName]
	start, hasStart := row[fieldStartTime]
	if !hasName || !hasStart {
		return "", "", false
	}
	_, clockErr := parseClock(start)
	if clockErr == nil && !strings.Contains(start, ",") && strings.TrimSpace(row[fieldArtist]) != "" {
		return "", "", false
	}
	date, _, _ = strings.Cut(start, ",")
	return title.CollapseSpace(rawName), strings.TrimSpace(date), true
}

// parseClock parses a start time such as "20:01:30" or "20.01.30 EET".
func parseClock(value string) (time.Time, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ".", ":"))
	value, _, _ = strings.Cut(value, " ")
	return time.Parse(playlist.ClockLayout, value)
}

func (s *seriesState) add(row int, fields map[string]string) error {
	rawTitle, ok := fields[fieldName]
	if !ok {
		return &playlist.RowError{Row: row, Field: fieldName, Reason: "missing"}
	}
	rawArtist, ok := fields[fieldArtist]
	if !ok {
		return &playlist.RowError{Row: row, Field: fieldArtist, Reason: "missing"}
	}
	rawStart, ok := fields[fieldStartTime]
	if !ok {
		return &playlist.RowError{Row: row, Field: fieldStartTime, Reason: "missing"}
	}
	start, err := parseClock(rawStart)
	if err != nil {
		return &playlist.RowError{Row: row, Field: fieldStartTime, Reason: fmt.Sprintf("invalid clock time %q", rawStart)}
	}

	if !s.started {
		s.base = start
		s.started = true
	}
	elapsed := start.Sub(s.base)
	if elapsed < 0 {
		// set continued past midnight
		elapsed += 24 * time.Hour
	}
	play := elapsed - s.previousElapsed
	if play < minPlayDuration {
		play = minPlayDuration
	}

	track := playlist.NewTrack(title.Case(rawArtist), title.Case(title.Normalize(rawTitle)))
	track.Timing = &playlist.Timing{Elapsed: elapsed, Start: start, Play: play}

	if n := len(s.tracks); n > 0 && s.tracks[n-1].SameSong(track) {
		// previousElapsed stays at the first instance of the run
		s.tracks[n-1].Timing.Play += play
		return nil
	}
	s.tracks = append(s.tracks, track)
	s.previousElapsed = elapsed
	return nil
}

// shiftPlayDurations moves each measured gap onto the track that played
// during it. The last track keeps its own gap.
// TODO: take the last track's duration from the "end time" column when present.
func (s *seriesState) shiftPlayDurations() {
	for i := 1; i < len(s.tracks); i++ {
		s.tracks[i-1].Timing.Play = s.tracks[i].Timing.Play
	}
}
