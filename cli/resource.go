package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rpupo63/portfolio-admin/manager"
)

// resourceCommands binds one manager to the shared list/create/update/delete
// verbs. Each resource supplies its flag bindings and table renderer; the
// engine supplies everything else.
type resourceCommands[R manager.Resource] struct {
	app    *App
	mgr    *manager.Manager[R]
	render func(w io.Writer, compact bool, items []R)
	// bindForm registers the resource's flags on fs and returns a closure
	// producing the form after parsing. verb is "create" or "update".
	bindForm func(fs *flag.FlagSet, verb string) func() manager.Form
	// extra handles resource-specific verbs (download, activate, read).
	extra func(ctx context.Context, verb string, args []string) (handled bool, err error)
}

func (c resourceCommands[R]) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing verb for %s", c.mgr.Describe().Name)
	}
	verb, rest := args[0], args[1:]

	if c.extra != nil {
		if handled, err := c.extra(ctx, verb, rest); handled {
			return err
		}
	}

	switch verb {
	case "list":
		items, err := c.mgr.List(ctx)
		if err != nil {
			return fmt.Errorf("listing %ss failed (retry manually): %w", c.mgr.Describe().Name, err)
		}
		c.render(c.app.out, c.app.store.CompactOutput(), items)
		return nil

	case "create":
		fs := c.newFlagSet(verb)
		build := c.bindForm(fs, verb)
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		created, err := c.mgr.Create(ctx, build())
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Created %s %d.\n", c.mgr.Describe().Name, created.Key())
		c.render(c.app.out, c.app.store.CompactOutput(), c.mgr.Items())
		return nil

	case "update":
		fs := c.newFlagSet(verb)
		id := fs.Int("id", 0, "record id")
		build := c.bindForm(fs, verb)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("update requires -id")
		}
		if _, err := c.mgr.Update(ctx, *id, build()); err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Updated %s %d.\n", c.mgr.Describe().Name, *id)
		c.render(c.app.out, c.app.store.CompactOutput(), c.mgr.Items())
		return nil

	case "delete":
		fs := c.newFlagSet(verb)
		id := fs.Int("id", 0, "record id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("delete requires -id")
		}
		err := c.mgr.Remove(ctx, *id, c.app.confirm)
		if errors.Is(err, manager.ErrDeclined) {
			fmt.Fprintln(c.app.out, "Aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.out, "Deleted %s %d.\n", c.mgr.Describe().Name, *id)
		return nil

	default:
		return fmt.Errorf("unknown verb %q for %s", verb, c.mgr.Describe().Name)
	}
}

func (c resourceCommands[R]) newFlagSet(verb string) *flag.FlagSet {
	fs := flag.NewFlagSet(c.mgr.Describe().Name+" "+verb, flag.ContinueOnError)
	fs.SetOutput(c.app.out)
	return fs
}

// table starts a tabwriter for list output.
func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
