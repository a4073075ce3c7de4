package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/models"
)

func (a *App) experienceCommands() resourceCommands[models.Experience] {
	return resourceCommands[models.Experience]{
		app: a,
		mgr: a.experience,
		render: func(w io.Writer, compact bool, items []models.Experience) {
			tw := table(w)
			fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tSTART\tEND\tCURRENT")
			for _, e := range items {
				end := ""
				if e.EndDate != nil {
					end = *e.EndDate
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Title, e.Company, e.StartDate, end, yesNo(e.Current))
			}
			tw.Flush()
		},
		bindForm: func(fs *flag.FlagSet, verb string) func() manager.Form {
			title := fs.String("title", "", "position title")
			company := fs.String("company", "", "company name")
			location := fs.String("location", "", "location")
			start := fs.String("start", "", "start date (YYYY-MM-DD)")
			end := fs.String("end", "", "end date (YYYY-MM-DD), ignored when -current")
			current := fs.Bool("current", false, "mark as current position")
			description := fs.String("description", "", "role description")
			technologies := fs.String("technologies", "", "technologies used")
			order := fs.Int("order", 0, "display order")
			return func() manager.Form {
				return models.ExperienceForm{
					Title:        *title,
					Company:      *company,
					Location:     *location,
					StartDate:    *start,
					EndDate:      *end,
					Current:      *current,
					Description:  *description,
					Technologies: *technologies,
					Order:        *order,
				}
			}
		},
	}
}
