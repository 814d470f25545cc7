package actions

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
	"github.com/urfave/cli/v2"

	"playlistformatter/internal/config"
)

const configKey = "config"

// SetConfig stores cfg on the app for the command actions
func SetConfig(c *cli.Context, cfg *config.Config) {
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}
	c.App.Metadata[configKey] = cfg
}

// configFrom returns the loaded configuration, or the defaults when the
// app was started without one.
func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// runStep runs action behind a spinner, or directly when quiet
func runStep(c *cli.Context, title string, quiet bool, action func(context.Context) error) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if quiet {
		return action(ctx)
	}
	return spinner.New().Title(title).Context(ctx).ActionWithErr(action).Run()
}
