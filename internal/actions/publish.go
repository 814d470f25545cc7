package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"playlistformatter/internal/adapters"
	"playlistformatter/internal/playlist"
	"playlistformatter/internal/porter"
)

// PublishPlaylist reads a playlist file and recreates it on a music platform.
func PublishPlaylist(c *cli.Context) error {
	cfg := configFrom(c)

	source, err := sourceArg(c, "Enter the playlist file to publish")
	if err != nil {
		return err
	}

	platform := strings.ToLower(c.String("to"))
	if platform == "" {
		platform = cfg.Publish.Platform
		if err := huh.NewSelect[string]().
			Title("Choose the platform to publish to").
			Options(
				huh.NewOption("Spotify", string(adapters.SpotifyPlatform)),
				huh.NewOption("YouTube Music", string(adapters.YoutubePlatform)),
			).
			Value(&platform).
			Run(); err != nil {
			return err
		}
	}

	doc, err := readPlaylist(c, source, false)
	if err != nil {
		return err
	}

	p, err := porter.NewPorterWithCredentials(platform, adapters.Credentials{CallbackPort: cfg.Publish.CallbackPort})
	if err != nil {
		return err
	}
	if !p.IsAuthenticated() {
		if err := p.Authenticate(); err != nil {
			return err
		}
	}

	target := c.String("playlist")
	if c.IsSet("playlist") && target == "" {
		if target, err = choosePlaylist(p); err != nil {
			return err
		}
	}

	limit := c.Int("limit")
	if limit <= 0 {
		limit = cfg.Publish.SearchLimit
	}
	opts := porter.PublishOptions{
		Name:        c.String("name"),
		Playlist:    target,
		SearchLimit: limit,
	}

	var report *porter.PublishReport
	err = runStep(c, fmt.Sprintf("Publishing %d tracks to %s...", len(doc.Tracks), p.Platform()), false, func(ctx context.Context) error {
		var err error
		report, err = p.PublishDocument(ctx, doc, opts)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Println(field("Playlist", report.Playlist.Name+" "+dimStyle.Render(report.Playlist.ID), labelStyle))
	fmt.Println(field("Added", len(report.Added), outputStyle))
	if len(report.Skipped) > 0 {
		fmt.Println(field("Already present", len(report.Skipped), dimStyle))
	}
	if len(report.Missing) > 0 {
		fmt.Println(field("Not found", len(report.Missing), warningStyle))
		for i, t := range report.Missing {
			fmt.Printf("  %d: %s\n", i+1, trackLine(t))
		}
	}

	if path := c.String("report"); path != "" {
		if err := report.WriteReport(path); err != nil {
			return err
		}
		fmt.Println(field("Report", path, pathStyle))
	}
	return nil
}

// choosePlaylist asks the user to pick one of their playlists
func choosePlaylist(p *porter.Porter) (string, error) {
	playlists, err := p.GetPlaylists()
	if err != nil {
		return "", err
	}
	if len(playlists) == 0 {
		return "", fmt.Errorf("no playlists found on %s", p.Platform())
	}

	var id string
	if err := huh.NewSelect[string]().
		Height(10).
		Title("Choose the playlist to add to").
		Options(playlistOptions(playlists)...).
		Value(&id).
		Run(); err != nil {
		return "", err
	}
	return id, nil
}

func playlistOptions(playlists []playlist.RemotePlaylist) []huh.Option[string] {
	options := make([]huh.Option[string], len(playlists))
	for i, pl := range playlists {
		label := fmt.Sprintf("%s (%s tracks)", pl.Name, humanize.Comma(int64(pl.TrackCount)))
		if !pl.CreatedAt.IsZero() {
			label += ", created " + humanize.Time(pl.CreatedAt)
		}
		options[i] = huh.NewOption(label, pl.ID)
	}
	return options
}

// trackLine renders "Artist - Title", followed by the play time in
// minutes and seconds when the track has one.
func trackLine(t playlist.Track) string {
	m, sec, ok := t.PlayMinutesSeconds()
	if !ok {
		return t.String()
	}
	return fmt.Sprintf("%s %s", t.String(), dimStyle.Render(fmt.Sprintf("(%d:%02d)", m, sec)))
}
