package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/models"
)

func (a *App) skillCommands() resourceCommands[models.Skill] {
	return resourceCommands[models.Skill]{
		app: a,
		mgr: a.skills,
		render: func(w io.Writer, compact bool, items []models.Skill) {
			tw := table(w)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPROFICIENCY")
			for _, s := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d%%\n", s.ID, s.Name, s.Category, s.Proficiency)
			}
			tw.Flush()
		},
		bindForm: func(fs *flag.FlagSet, verb string) func() manager.Form {
			name := fs.String("name", "", "skill name")
			category := fs.String("category", "other", "frontend, backend, database, devops or other")
			proficiency := fs.Int("proficiency", 80, "proficiency 0-100")
			icon := fs.String("icon", "", "icon class or emoji")
			order := fs.Int("order", 0, "display order")
			return func() manager.Form {
				return models.SkillForm{
					Name:        *name,
					Category:    models.SkillCategory(*category),
					Proficiency: *proficiency,
					Icon:        *icon,
					Order:       *order,
				}
			}
		},
	}
}
