package main

import (
	"context"
	"errors"

	"github.com/osse101/userreconcile/internal/database/sqlite"
)

var errPurgeCancelled = errors.New("purge cancelled")

type purgeCommand struct{ app *app }

func (c *purgeCommand) Name() string  { return "purge" }
func (c *purgeCommand) Usage() string { return "purge [--yes]" }
func (c *purgeCommand) Description() string {
	return "Overwrite and delete the staging database, which holds personal data"
}

func (c *purgeCommand) Run(ctx context.Context, args []string) error {
	force := false
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "--yes":
		force = true
	default:
		return usageError(c)
	}

	path := c.app.cfg.StagingPath
	if !force {
		ok, err := confirm(c.app.stdin, c.app.stderr, "This permanently destroys "+path+".")
		if err != nil {
			return err
		}
		if !ok {
			return errPurgeCancelled
		}
	}

	removed, err := sqlite.Purge(path)
	if err != nil {
		return err
	}
	c.app.log.Info("Staging database purged", "files", removed)
	return nil
}
