package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/models"
)

func (a *App) testimonialCommands() resourceCommands[models.Testimonial] {
	return resourceCommands[models.Testimonial]{
		app: a,
		mgr: a.testimonials,
		render: func(w io.Writer, compact bool, items []models.Testimonial) {
			tw := table(w)
			fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tRATING\tAPPROVED\tFEATURED")
			for _, t := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
					t.ID, t.Name, t.Company, t.Rating, yesNo(t.Approved), yesNo(t.Featured))
			}
			tw.Flush()
		},
		bindForm: func(fs *flag.FlagSet, verb string) func() manager.Form {
			name := fs.String("name", "", "person's name")
			position := fs.String("position", "", "person's position")
			company := fs.String("company", "", "person's company")
			content := fs.String("content", "", "testimonial text")
			rating := fs.Int("rating", 5, "rating 1-5")
			featured := fs.Bool("featured", false, "mark as featured")
			approved := fs.Bool("approved", false, "approve for public display")
			order := fs.Int("order", 0, "display order")
			return func() manager.Form {
				return models.TestimonialForm{
					Name:     *name,
					Position: *position,
					Company:  *company,
					Content:  *content,
					Rating:   *rating,
					Featured: *featured,
					Approved: *approved,
					Order:    *order,
				}
			}
		},
	}
}
