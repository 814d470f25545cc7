package actions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"playlistformatter/internal/config"
	"playlistformatter/internal/history"
	"playlistformatter/internal/playlist"
)

const tabLog = "#\tTrack Title\tArtist\tBPM\tTime\tKey\tGenre\tDate Added\n" +
	"1\tfirst song - remixer remix\tartist one\t124.00\t06:01\t8A\tHouse\t2023-03-30\n" +
	"2\tSecond Song (Clean)\tArtist Two\t126.00\t05:12\t9A\tHouse\t2023-03-30\n"

func testApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name: "playlistformatter",
		Before: func(c *cli.Context) error {
			SetConfig(c, cfg)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name: "format",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}},
					&cli.BoolFlag{Name: "no-history"},
				},
				Action: FormatPlaylist,
			},
		},
	}
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "rekordbox.txt")
	if err := os.WriteFile(path, []byte(tabLog), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatPlaylistExportsAndRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	cfg := config.Default()
	cfg.History.Path = filepath.Join(dir, "history.db")

	if err := testApp(cfg).Run([]string{"playlistformatter", "format", "-q", input}); err != nil {
		t.Fatalf("format: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "rekordbox.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "Artist,,Song\n" +
		"Artist One,-,First Song (Remixer Remix)\n" +
		"Artist Two,-,Second Song\n"
	if string(data) != want {
		t.Errorf("export =\n%s\nwant\n%s", data, want)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	entries, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "rekordbox" || entries[0].Tracks != 2 {
		t.Errorf("history = %+v", entries)
	}
}

func TestFormatPlaylistRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	output := filepath.Join(dir, "clean.txt")
	if err := os.WriteFile(output, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.History.Enabled = false

	err := testApp(cfg).Run([]string{"playlistformatter", "format", "-q", "-o", output, input})
	if !errors.Is(err, playlist.ErrOutputExists) {
		t.Fatalf("expected ErrOutputExists, got %v", err)
	}

	if err := testApp(cfg).Run([]string{"playlistformatter", "format", "-q", "-f", "-o", output, input}); err != nil {
		t.Fatalf("format --force: %v", err)
	}
	data, _ := os.ReadFile(output)
	if string(data) != "Artist One - First Song (Remixer Remix)\nArtist Two - Second Song\n" {
		t.Errorf("text export = %q", data)
	}
}

func TestFormatPlaylistMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.History.Enabled = false
	err := testApp(cfg).Run([]string{"playlistformatter", "format", "-q", filepath.Join(t.TempDir(), "nope.csv")})
	if !errors.Is(err, playlist.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestWithFormat(t *testing.T) {
	doc := &playlist.Document{Path: playlist.PathParts{Base: "set 10.01.2019"}}
	tests := []struct {
		requested, format, want string
	}{
		{"", "csv", ""},
		{"", "txt", "set 10.01.2019.txt"},
		{"out", "txt", "out.txt"},
		{"out.csv", "txt", "out.csv"},
		{"out", "csv", "out"},
	}
	for _, tt := range tests {
		if got := withFormat(doc, tt.requested, tt.format); got != tt.want {
			t.Errorf("withFormat(%q, %q) = %q, want %q", tt.requested, tt.format, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	doc := &playlist.Document{
		Source: playlist.TimeSeries{Name: "Friday", Date: "10.01.2019"},
		Tracks: []playlist.Track{
			{Artist: "A", Title: "One", Timing: &playlist.Timing{Play: 2 * time.Minute}},
			{Artist: "B", Title: "Two", Timing: &playlist.Timing{Play: 4 * time.Minute}},
		},
	}
	out := summary(doc)
	for _, want := range []string{"Friday", "time-series", "10.01.2019", "0:06:00", "0:03:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	tab := summary(&playlist.Document{Source: playlist.TabLog{}, Path: playlist.PathParts{Base: "rb"}})
	if strings.Contains(tab, "Duration") {
		t.Errorf("tab-log summary has duration:\n%s", tab)
	}
}

func TestTrackLine(t *testing.T) {
	tab := playlist.NewTrack("Artist One", "Song One")
	if got := trackLine(tab); got != "Artist One - Song One" {
		t.Errorf("untimed = %q", got)
	}

	timed := playlist.NewTrack("Artist One", "Song One")
	timed.Timing = &playlist.Timing{Play: 3*time.Minute + 5*time.Second}
	if got := trackLine(timed); !strings.HasPrefix(got, "Artist One - Song One ") || !strings.Contains(got, "(3:05)") {
		t.Errorf("timed = %q", got)
	}
}

func TestPlaylistOptions(t *testing.T) {
	options := playlistOptions([]playlist.RemotePlaylist{
		{ID: "a", Name: "Friday Show", TrackCount: 1200},
		{ID: "b", Name: "Warmup", CreatedAt: time.Now().Add(-48 * time.Hour)},
	})
	if len(options) != 2 {
		t.Fatalf("options = %d", len(options))
	}
	if options[0].Value != "a" || options[0].Key != "Friday Show (1,200 tracks)" {
		t.Errorf("first option = %q -> %q", options[0].Key, options[0].Value)
	}
	if !strings.Contains(options[1].Key, "created 2 days ago") {
		t.Errorf("second option = %q", options[1].Key)
	}
}
