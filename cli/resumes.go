package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/models"
)

func (a *App) resumeCommands() resourceCommands[models.Resume] {
	commands := resourceCommands[models.Resume]{
		app: a,
		mgr: a.resumes,
		render: func(w io.Writer, compact bool, items []models.Resume) {
			tw := table(w)
			fmt.Fprintln(tw, "ID\tTITLE\tVERSION\tACTIVE\tFILE\tSIZE")
			for _, r := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Title, r.Version, yesNo(r.IsActive), r.FileName(), r.FileSize)
			}
			tw.Flush()
		},
		bindForm: func(fs *flag.FlagSet, verb string) func() manager.Form {
			title := fs.String("title", "Resume", "resume title")
			description := fs.String("description", "", "brief description")
			version := fs.String("version", "", "version number or date")
			file := fs.String("file", "", "path to a PDF, DOC or DOCX (max 5MB); on update, empty keeps the current file")
			active := fs.Bool("active", false, "mark as the active resume")
			return func() manager.Form {
				return models.ResumeForm{
					Title:        *title,
					Description:  *description,
					Version:      *version,
					FilePath:     *file,
					IsActive:     *active,
					FileRequired: verb == "create",
				}
			}
		},
	}
	commands.extra = a.resumeExtras
	return commands
}

// resumeExtras handles the verbs only resumes have: download and activate.
// Activation is a distinct confirmed action, not an edit.
func (a *App) resumeExtras(ctx context.Context, verb string, args []string) (bool, error) {
	switch verb {
	case "download":
		fs := flag.NewFlagSet("resumes download", flag.ContinueOnError)
		fs.SetOutput(a.out)
		id := fs.Int("id", 0, "resume id")
		dir := fs.String("dir", ".", "directory to save into")
		if err := fs.Parse(args); err != nil {
			return true, err
		}
		if *id == 0 {
			return true, fmt.Errorf("download requires -id")
		}

		fallback := ""
		for _, r := range a.resumes.Items() {
			if r.ID == *id {
				fallback = r.FileName()
			}
		}
		saved, err := a.resumes.Download(ctx, *id, *dir, fallback)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(a.out, "Saved %s\n", saved)
		return true, nil

	case "activate":
		fs := flag.NewFlagSet("resumes activate", flag.ContinueOnError)
		fs.SetOutput(a.out)
		id := fs.Int("id", 0, "resume id")
		if err := fs.Parse(args); err != nil {
			return true, err
		}
		if *id == 0 {
			return true, fmt.Errorf("activate requires -id")
		}

		title := fmt.Sprintf("Activate resume %d", *id)
		detail := "This resume becomes the one offered for download on the public site."
		if !a.confirm.Confirm(title, detail) {
			fmt.Fprintln(a.out, "Aborted.")
			return true, nil
		}
		if _, err := a.resumes.Patch(ctx, *id, map[string]any{"is_active": true}); err != nil {
			return true, err
		}
		fmt.Fprintf(a.out, "Resume %d is now active.\n", *id)
		return true, nil
	}
	return false, nil
}
