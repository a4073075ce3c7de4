package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/rpupo63/portfolio-admin/config"
	"github.com/rpupo63/portfolio-admin/dashboard"
)

func (a *App) runDashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(a.out)
	watch := fs.Bool("watch", false, "keep refreshing until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *watch {
		interval := config.GetMinutes(a.cfg, "DASHBOARD_REFRESH_MINUTES", dashboard.DefaultInterval)
		a.board.Poll(ctx, interval, func(stats dashboard.Stats) {
			a.renderDashboard(stats)
		})
		return nil
	}

	a.renderDashboard(a.board.Snapshot(ctx))
	return nil
}

func (a *App) renderDashboard(stats dashboard.Stats) {
	fmt.Fprintf(a.out, "Dashboard as of %s\n\n", stats.FetchedAt.Format("2006-01-02 15:04:05"))

	names := make([]string, 0, len(stats.Counts)+len(stats.Errors))
	for name := range stats.Counts {
		names = append(names, name)
	}
	for name := range stats.Errors {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := table(a.out)
	fmt.Fprintln(tw, "RESOURCE\tCOUNT")
	for _, name := range names {
		if err, failed := stats.Errors[name]; failed {
			fmt.Fprintf(tw, "%s\tunavailable (%v)\n", name, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\n", name, stats.Counts[name])
	}
	tw.Flush()

	if len(stats.Recent) > 0 {
		fmt.Fprintln(a.out, "\nRecent activity:")
		for _, act := range stats.Recent {
			when := ""
			if !act.Time.IsZero() {
				when = act.Time.Format("2006-01-02")
			}
			fmt.Fprintf(a.out, "  [%s] %s %s\n", act.Type, act.Title, when)
		}
	}
}
