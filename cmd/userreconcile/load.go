package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/osse101/userreconcile/internal/database"
	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/loader"
	"github.com/osse101/userreconcile/internal/logger"
	"github.com/osse101/userreconcile/internal/source"
)

// parseTarget reads the HOST PORT DB USER positionals shared by both loaders
func parseTarget(cmd Command, args []string) (database.Target, error) {
	if len(args) != 4 {
		return database.Target{}, usageError(cmd)
	}
	port, err := strconv.Atoi(args[1])
	if err != nil {
		return database.Target{}, fmt.Errorf("%w: port %q is not a number", domain.ErrUsage, args[1])
	}

	t := database.Target{Host: args[0], Port: port, Name: args[2], User: args[3]}
	if err := t.Validate(); err != nil {
		return database.Target{}, fmt.Errorf("%w: %w", domain.ErrUsage, err)
	}
	return t, nil
}

func (a *app) loader(ctx context.Context) (loader.Service, error) {
	st, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	return loader.NewService(st, a.log, a.metrics, loader.Config{
		BatchSize:     a.cfg.FetchBatchSize,
		ProgressEvery: a.cfg.ProgressEvery,
	}), nil
}

func (a *app) recordSnapshot(snap domain.Snapshot) {
	a.details["table"] = string(snap.Table)
	a.details["rows"] = snap.RowCount
	a.details["source"] = snap.Source
}

type loadAuthoritativeCommand struct{ app *app }

func (c *loadAuthoritativeCommand) Name() string  { return "loadAuthoritative" }
func (c *loadAuthoritativeCommand) Usage() string { return "loadAuthoritative HOST PORT DB USER" }
func (c *loadAuthoritativeCommand) Description() string {
	return "Replace the staged authoritative users from the relational database"
}

func (c *loadAuthoritativeCommand) Run(ctx context.Context, args []string) error {
	target, err := parseTarget(c, args)
	if err != nil {
		return err
	}
	cfg := c.app.cfg

	target.Password, err = c.app.password(cfg.AuthoritativePassword,
		fmt.Sprintf("%s password for user %s", cfg.AuthoritativeDriver, target.User))
	if err != nil {
		return err
	}

	svc, err := c.app.loader(ctx)
	if err != nil {
		return err
	}

	db, err := database.OpenAuthoritative(ctx, logger.FromContext(ctx, c.app.log), cfg.AuthoritativeDriver, target, cfg.ConnectTimeout)
	if err != nil {
		return err
	}
	defer db.Close()

	src, err := source.NewSQLAuthoritative(db, cfg.AuthoritativeTable,
		fmt.Sprintf("%s://%s (%s)", cfg.AuthoritativeDriver, target, cfg.AuthoritativeTable))
	if err != nil {
		return err
	}

	snap, err := svc.LoadAuthoritative(ctx, src)
	if err != nil {
		return err
	}
	c.app.recordSnapshot(snap)
	return nil
}

type loadSecondaryCommand struct{ app *app }

func (c *loadSecondaryCommand) Name() string  { return "loadSecondary" }
func (c *loadSecondaryCommand) Usage() string { return "loadSecondary HOST PORT DB USER" }
func (c *loadSecondaryCommand) Description() string {
	return "Replace the staged secondary users from the document store"
}

func (c *loadSecondaryCommand) Run(ctx context.Context, args []string) error {
	target, err := parseTarget(c, args)
	if err != nil {
		return err
	}
	cfg := c.app.cfg

	target.Password, err = c.app.password(cfg.SecondaryPassword,
		fmt.Sprintf("MongoDB password for user %s", target.User))
	if err != nil {
		return err
	}

	svc, err := c.app.loader(ctx)
	if err != nil {
		return err
	}

	client, err := database.OpenSecondary(ctx, logger.FromContext(ctx, c.app.log), target, cfg.SecondaryAuthSource, cfg.ConnectTimeout)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	coll := client.Database(target.Name).Collection(cfg.SecondaryCollection)
	src := source.NewMongoSecondary(coll,
		fmt.Sprintf("mongodb://%s (%s)", target, cfg.SecondaryCollection))

	snap, err := svc.LoadSecondary(ctx, src)
	if err != nil {
		return err
	}
	c.app.recordSnapshot(snap)
	return nil
}
