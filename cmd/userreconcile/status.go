package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/osse101/userreconcile/internal/database/sqlite"
	"github.com/osse101/userreconcile/internal/domain"
	"github.com/osse101/userreconcile/internal/reconcile"
	"github.com/osse101/userreconcile/internal/repository"
)

type statusCommand struct{ app *app }

func (c *statusCommand) Name() string  { return "status" }
func (c *statusCommand) Usage() string { return "status [RUNS]" }
func (c *statusCommand) Description() string {
	return "Show the staged snapshots, the sanity verdict and recent runs"
}

func (c *statusCommand) Run(ctx context.Context, args []string) error {
	limit := sqlite.DefaultRecentRuns
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: RUNS must be a positive number", domain.ErrUsage)
		}
		limit = n
	default:
		return usageError(c)
	}

	st, err := c.app.store(ctx)
	if err != nil {
		return err
	}
	snaps, err := st.Snapshots(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.app.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tROWS\tLOADED AT\tRUN ID\tSOURCE")
	counts := map[domain.Table]int64{}
	for _, s := range snaps {
		counts[s.Table] = s.RowCount
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", s.Table, s.RowCount, s.LoadedAt.Format(time.RFC3339), s.RunID, s.Source)
	}
	fmt.Fprintln(tw)

	verdict := "ok"
	if err := reconcile.CheckSanity(counts[domain.TableAuthoritative], counts[domain.TableSecondary]); err != nil {
		verdict = err.Error()
	}
	fmt.Fprintf(tw, "SANITY\t%s\n\n", verdict)

	if err := printRuns(ctx, tw, st, limit); err != nil {
		return err
	}
	return tw.Flush()
}

// printRuns writes the newest limit runs as tab separated rows
func printRuns(ctx context.Context, w io.Writer, runs repository.RunLog, limit int) error {
	recent, err := runs.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "STARTED\tCOMMAND\tOUTCOME\tDURATION\tRUN ID")
	for _, r := range recent {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Format(time.RFC3339), r.Command, r.Outcome,
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond), r.RunID)
	}
	return nil
}

type indexCommand struct{ app *app }

func (c *indexCommand) Name() string  { return "index" }
func (c *indexCommand) Usage() string { return "index" }
func (c *indexCommand) Description() string {
	return "Create lookup indexes on the staged tables (speeds up check/fix on large snapshots)"
}

func (c *indexCommand) Run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError(c)
	}
	st, err := c.app.store(ctx)
	if err != nil {
		return err
	}
	if err := st.CreateIndexes(ctx); err != nil {
		return err
	}
	c.app.log.Info("Indexes created", "count", len(sqlite.Indexes))
	return nil
}
