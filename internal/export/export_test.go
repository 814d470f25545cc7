package export

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"playlistformatter/internal/playlist"
)

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	c, err := time.Parse(playlist.ClockLayout, s)
	if err != nil {
		t.Fatalf("parse clock %q: %v", s, err)
	}
	return c
}

func timeSeriesDoc(t *testing.T) *playlist.Document {
	return &playlist.Document{
		Source: playlist.TimeSeries{Name: "Friday", Date: "10.01.2019"},
		Path:   playlist.PathParts{Dir: "/music", Base: "friday", Ext: ".csv"},
		Tracks: []playlist.Track{
			{Artist: "Artist One", Title: "Song One", Timing: &playlist.Timing{Elapsed: 0, Start: clock(t, "20:00:00"), Play: 90 * time.Second}},
			{Artist: "Artist Two", Title: "Song Two", Timing: &playlist.Timing{Elapsed: 90 * time.Second, Start: clock(t, "20:01:30"), Play: time.Hour + 5*time.Second}},
		},
	}
}

func tabLogDoc() *playlist.Document {
	return &playlist.Document{
		Source: playlist.TabLog{},
		Path:   playlist.PathParts{Dir: "/music", Base: "rekordbox", Ext: ".txt"},
		Tracks: []playlist.Track{
			playlist.NewTrack("Artist One", "Song One"),
			playlist.NewTrack("Artist, Two", "Song Two"),
		},
	}
}

func TestEncodeTimeSeries(t *testing.T) {
	got, err := Encode(timeSeriesDoc(t))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := [][]string{
		{"Artist", "", "Song", "Time", "Playtime", "Start time"},
		{"Artist One", "-", "Song One", "0:00:00", "0:01:30", "20:00:00"},
		{"Artist Two", "-", "Song Two", "0:01:30", "1:00:05", "20:01:30"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeTabLog(t *testing.T) {
	got, err := Encode(tabLogDoc())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := [][]string{
		{"Artist", "", "Song"},
		{"Artist One", "-", "Song One"},
		{"Artist, Two", "-", "Song Two"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeWithoutData(t *testing.T) {
	if _, err := Encode(nil); !errors.Is(err, playlist.ErrExportWithoutData) {
		t.Errorf("nil doc err = %v", err)
	}
	if _, err := Encode(&playlist.Document{Source: playlist.TabLog{}}); !errors.Is(err, playlist.ErrExportWithoutData) {
		t.Errorf("empty doc err = %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	doc := tabLogDoc()
	cases := []struct {
		name      string
		requested string
		dir       string
		want      string
	}{
		{"default next to input", "", "", filepath.Join("/music", "rekordbox.csv")},
		{"default in configured dir", "", "/exports", filepath.Join("/exports", "rekordbox.csv")},
		{"bare name gets extension", "friday", "", filepath.Join("/music", "friday.csv")},
		{"dotted date kept", "10.01.2019", "", filepath.Join("/music", "10.01.2019.csv")},
		{"txt kept", "friday.txt", "", filepath.Join("/music", "friday.txt")},
		{"upper case csv kept", "friday.CSV", "", filepath.Join("/music", "friday.CSV")},
		{"explicit path", filepath.Join("out", "friday"), "/exports", filepath.Join("out", "friday.csv")},
		{"absolute path", "/tmp/friday.csv", "/exports", "/tmp/friday.csv"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OutputPath(doc, tc.requested, tc.dir); got != tc.want {
				t.Errorf("OutputPath = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriteCsvAndOverwriteGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.csv")
	doc := tabLogDoc()
	if err := Write(doc, path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "Artist,,Song\nArtist One,-,Song One\n\"Artist, Two\",-,Song Two\n"
	if string(content) != want {
		t.Errorf("content = %q, want %q", content, want)
	}

	if err := Write(doc, path, false); !errors.Is(err, playlist.ErrOutputExists) {
		t.Errorf("second write err = %v, want ErrOutputExists", err)
	}
	if err := Write(doc, path, true); err != nil {
		t.Errorf("overwrite: %v", err)
	}
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.txt")
	if err := Write(timeSeriesDoc(t), path, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "Artist One - Song One\nArtist Two - Song Two\n" {
		t.Errorf("content = %q", content)
	}
}

func TestWriteWithoutDataCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := Write(&playlist.Document{Source: playlist.TabLog{}}, path, false); !errors.Is(err, playlist.ErrExportWithoutData) {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file, stat err = %v", err)
	}
}
