package actions

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"playlistformatter/internal/history"
	"playlistformatter/internal/playlist"
)

// ShowHistory lists the most recent exports.
func ShowHistory(c *cli.Context) error {
	cfg := configFrom(c)

	dbPath, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("resolve history path: %w", err)
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("No exports recorded yet."))
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s %s  %s tracks  %s  %s\n",
			labelStyle.Render(e.Name),
			kindStyle.Render("("+e.Kind+")"),
			humanize.Comma(int64(e.Tracks)),
			playlist.FormatDuration(e.Total),
			dimStyle.Render(humanize.Time(e.CreatedAt)),
		)
		fmt.Println("  " + outputStyle.Render(e.OutputPath))
	}
	return nil
}
