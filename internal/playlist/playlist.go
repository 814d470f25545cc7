package playlist

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies which reader produced a Document
type Kind int

const (
	KindTimeSeries Kind = iota
	KindTabLog
)

func (k Kind) String() string {
	switch k {
	case KindTimeSeries:
		return "time-series"
	case KindTabLog:
		return "tab-log"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source describes where a Document came from. It is implemented only by
// TimeSeries and TabLog so callers can switch over it exhaustively.
type Source interface {
	Kind() Kind
	source()
}

// TimeSeries is the source of a comma-delimited log with start times.
// Name and Date come from the optional info row and may be empty.
type TimeSeries struct {
	Name string
	Date string
}

func (TimeSeries) Kind() Kind { return KindTimeSeries }
func (TimeSeries) source()    {}

// TabLog is the source of a tab-delimited export without timing.
type TabLog struct{}

func (TabLog) Kind() Kind { return KindTabLog }
func (TabLog) source()    {}

// Timing holds the time-series fields of a track
type Timing struct {
	// Elapsed is the time since the first track started
	Elapsed time.Duration
	// Start is the wall-clock time of day the track started
	Start time.Time
	// Play is how long the track played
	Play time.Duration
}

// Track represents a single playlist entry. Timing is nil for tab-log tracks.
type Track struct {
	Artist string
	Title  string
	Timing *Timing
}

// NewTrack builds a track with whitespace-collapsed artist and title.
func NewTrack(artist, title string) Track {
	return Track{
		Artist: strings.Join(strings.Fields(artist), " "),
		Title:  strings.Join(strings.Fields(title), " "),
	}
}

// SameSong reports whether two tracks have identical artist and title
func (t Track) SameSong(other Track) bool {
	return t.Artist == other.Artist && t.Title == other.Title
}

// PlayMinutesSeconds splits the play duration into whole minutes and
// remaining seconds. ok is false when the track has no timing.
func (t Track) PlayMinutesSeconds() (minutes, seconds int, ok bool) {
	if t.Timing == nil {
		return 0, 0, false
	}
	total := int(t.Timing.Play / time.Second)
	return total / 60, total % 60, true
}

func (t Track) String() string {
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}

// PathParts is the split form of the file a Document was read from
type PathParts struct {
	Dir  string
	Base string
	Ext  string
}

// Document is the result of reading a playlist file. It is populated once
// by a reader and treated as read-only afterwards.
type Document struct {
	Source Source
	Path   PathParts
	Tracks []Track
}

// Kind returns the kind of the document source
func (d *Document) Kind() Kind {
	return d.Source.Kind()
}

// Name returns the playlist name from the info row, or the base file name.
func (d *Document) Name() string {
	if ts, ok := d.Source.(TimeSeries); ok && ts.Name != "" {
		return ts.Name
	}
	return d.Path.Base
}

// Date returns the playlist date from the info row if there was one
func (d *Document) Date() string {
	if ts, ok := d.Source.(TimeSeries); ok {
		return ts.Date
	}
	return ""
}

// TotalDuration sums the play durations of all tracks
func (d *Document) TotalDuration() time.Duration {
	var total time.Duration
	for _, t := range d.Tracks {
		if t.Timing != nil {
			total += t.Timing.Play
		}
	}
	return total
}

// AverageDuration returns the mean play duration, truncated to whole seconds.
func (d *Document) AverageDuration() time.Duration {
	if len(d.Tracks) == 0 {
		return 0
	}
	avg := d.TotalDuration() / time.Duration(len(d.Tracks))
	return avg.Truncate(time.Second)
}
