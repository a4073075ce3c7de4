package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/models"
)

func (a *App) projectCommands() resourceCommands[models.Project] {
	return resourceCommands[models.Project]{
		app: a,
		mgr: a.projects,
		render: func(w io.Writer, compact bool, items []models.Project) {
			tw := table(w)
			if compact {
				fmt.Fprintln(tw, "ID\tTITLE\tFEATURED")
				for _, p := range items {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Title, yesNo(p.Featured))
				}
			} else {
				fmt.Fprintln(tw, "ID\tTITLE\tTECHNOLOGIES\tFEATURED\tGITHUB")
				for _, p := range items {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
						p.ID, p.Title, models.JoinList(p.Technologies), yesNo(p.Featured), p.GithubLink)
				}
			}
			tw.Flush()
		},
		bindForm: func(fs *flag.FlagSet, verb string) func() manager.Form {
			title := fs.String("title", "", "project title")
			description := fs.String("description", "", "project description")
			technologies := fs.String("technologies", "", "comma-separated technologies")
			github := fs.String("github", "", "GitHub link")
			demo := fs.String("demo", "", "live demo link")
			featured := fs.Bool("featured", false, "mark as featured")
			order := fs.Int("order", 0, "display order")
			image := fs.String("image", "", "path to a local image to attach")
			return func() manager.Form {
				return models.ProjectForm{
					Title:        *title,
					Description:  *description,
					Technologies: *technologies,
					GithubLink:   *github,
					LiveDemoLink: *demo,
					Featured:     *featured,
					Order:        *order,
					ImagePath:    *image,
				}
			}
		},
	}
}
