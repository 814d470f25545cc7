package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"playlistformatter/internal/config"
	"playlistformatter/internal/export"
	"playlistformatter/internal/history"
	"playlistformatter/internal/playlist"
	"playlistformatter/internal/reader"
)

// FormatPlaylist reads a playlist file, prints a summary and exports the
// cleaned tracks.
func FormatPlaylist(c *cli.Context) error {
	cfg := configFrom(c)
	quiet := c.Bool("quiet")

	source, err := sourceArg(c, "Enter the playlist file to format")
	if err != nil {
		return err
	}

	doc, err := readPlaylist(c, source, quiet)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Println(summary(doc))
	}

	requested := c.String("output")
	if requested == "" {
		requested = c.Args().Get(1)
	}
	path := export.OutputPath(doc, withFormat(doc, requested, cfg.Output.Format), cfg.Output.Dir)
	if !quiet {
		fmt.Println(field("Exporting as", path, outputStyle))
	}

	overwrite := cfg.Output.Overwrite || c.Bool("force")
	err = export.Write(doc, path, overwrite)
	if errors.Is(err, playlist.ErrOutputExists) && !quiet {
		confirmed := false
		if perr := huh.NewConfirm().
			Title(fmt.Sprintf("'%s' already exists. Overwrite?", path)).
			Value(&confirmed).
			Run(); perr != nil {
			return perr
		}
		if confirmed {
			err = export.Write(doc, path, true)
		}
	}
	if err != nil {
		return err
	}

	if cfg.History.Enabled && !c.Bool("no-history") {
		recordHistory(c.Context, cfg, doc, path)
	}
	return nil
}

// sourceArg returns the first argument, prompting for it when missing
func sourceArg(c *cli.Context, prompt string) (string, error) {
	source := c.Args().First()
	if source == "" {
		if err := huh.NewInput().
			Title(prompt).
			Value(&source).
			Run(); err != nil {
			return "", err
		}
	}
	// dropped files arrive quoted on some terminals
	source = strings.Trim(strings.TrimSpace(source), `"'`)
	if source == "" {
		return "", fmt.Errorf("no playlist file given")
	}
	return source, nil
}

func readPlaylist(c *cli.Context, source string, quiet bool) (*playlist.Document, error) {
	if !quiet {
		fmt.Println(field("Reading playlist", source, pathStyle))
	}
	var doc *playlist.Document
	err := runStep(c, "Reading...", quiet, func(ctx context.Context) error {
		var err error
		doc, err = reader.Dispatch(source)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// withFormat applies the configured default extension to a request without
// a recognised one.
func withFormat(doc *playlist.Document, requested, format string) string {
	if !strings.EqualFold(format, "txt") {
		return requested
	}
	name := strings.TrimSpace(requested)
	if name == "" {
		name = doc.Path.Base
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return name
	}
	return name + ".txt"
}

// summary describes doc in a few labelled lines
func summary(doc *playlist.Document) string {
	lines := []string{
		field("Playlist", doc.Name(), labelStyle) + " " + kindStyle.Render("("+doc.Kind().String()+")"),
	}
	switch src := doc.Source.(type) {
	case playlist.TimeSeries:
		if src.Date != "" {
			lines = append(lines, field("Date", src.Date, dimStyle))
		}
		lines = append(lines,
			field("Total tracks", humanize.Comma(int64(len(doc.Tracks))), labelStyle),
			field("Duration", playlist.FormatDuration(doc.TotalDuration()), outputStyle),
			field("Average per track", playlist.FormatDuration(doc.AverageDuration()), dimStyle),
		)
	case playlist.TabLog:
		lines = append(lines, field("Total tracks", humanize.Comma(int64(len(doc.Tracks))), labelStyle))
	}
	return strings.Join(lines, "\n")
}

// recordHistory stores the export. Failures are logged, not returned.
func recordHistory(ctx context.Context, cfg *config.Config, doc *playlist.Document, outputPath string) {
	if ctx == nil {
		ctx = context.Background()
	}
	dbPath, err := cfg.HistoryPath()
	if err != nil {
		slog.Warn("history unavailable", "error", err)
		return
	}
	store, err := history.Open(dbPath)
	if err != nil {
		slog.Warn("history unavailable", "error", err)
		return
	}
	defer store.Close()

	if abs, err := filepath.Abs(outputPath); err == nil {
		outputPath = abs
	}
	if _, err := store.Add(ctx, history.NewEntry(doc, outputPath)); err != nil {
		slog.Warn("history not recorded", "error", err)
	}
}
