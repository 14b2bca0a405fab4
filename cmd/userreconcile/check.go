package main

import (
	"bytes"
	"context"

	"github.com/osse101/userreconcile/internal/reconcile"
	"github.com/osse101/userreconcile/internal/report"
)

func (a *app) reconcile(ctx context.Context) (*reconcile.Result, error) {
	st, err := a.store(ctx)
	if err != nil {
		return nil, err
	}
	svc := reconcile.NewService(st, a.log, a.metrics, reconcile.Config{MaxSnapshotAge: a.cfg.MaxSnapshotAge})

	result, err := svc.Reconcile(ctx)
	if err != nil {
		return nil, err
	}
	a.details["orphaned"] = len(result.Orphaned)
	a.details["conflicted"] = len(result.Conflicted)
	return result, nil
}

type checkCommand struct{ app *app }

func (c *checkCommand) Name() string        { return "check" }
func (c *checkCommand) Usage() string       { return "check" }
func (c *checkCommand) Description() string { return "Write every orphaned and conflicted record as CSV" }

func (c *checkCommand) Run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}

	result, err := c.app.reconcile(ctx)
	if err != nil {
		return err
	}

	// Rendered in full before anything reaches stdout.
	var buf bytes.Buffer
	if err := report.WriteReview(&buf, result.Findings()); err != nil {
		return err
	}
	_, err = buf.WriteTo(c.app.stdout)
	return err
}

type fixCommand struct{ app *app }

func (c *fixCommand) Name() string  { return "fix" }
func (c *fixCommand) Usage() string { return "fix" }
func (c *fixCommand) Description() string {
	return "Write removal directives for records without previous activity"
}

func (c *fixCommand) Run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}

	result, err := c.app.reconcile(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	r := report.NewRemediator(c.app.cfg.SecondaryCollection, c.app.log, c.app.metrics)
	sum, err := r.Write(&buf, result.Findings())
	if err != nil {
		return err
	}
	c.app.details["emitted"] = sum.Emitted
	c.app.details["skipped"] = sum.Skipped

	_, err = buf.WriteTo(c.app.stdout)
	return err
}
