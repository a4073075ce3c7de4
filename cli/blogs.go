package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/models"
)

func (a *App) blogCommands() resourceCommands[models.BlogPost] {
	return resourceCommands[models.BlogPost]{
		app: a,
		mgr: a.blogs,
		render: func(w io.Writer, compact bool, items []models.BlogPost) {
			tw := table(w)
			fmt.Fprintln(tw, "ID\tTITLE\tPUBLISHED\tFEATURED\tTAGS")
			for _, b := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
					b.ID, b.Title, yesNo(b.Published), yesNo(b.Featured), models.JoinList(b.Tags))
			}
			tw.Flush()
		},
		bindForm: func(fs *flag.FlagSet, verb string) func() manager.Form {
			title := fs.String("title", "", "post title")
			content := fs.String("content", "", "post content")
			excerpt := fs.String("excerpt", "", "short summary for preview")
			tags := fs.String("tags", "", "comma-separated tags")
			published := fs.Bool("published", false, "publish this post")
			featured := fs.Bool("featured", false, "mark as featured")
			author := fs.String("author", "", "post author")
			image := fs.String("image", "", "path to a local image to attach")
			return func() manager.Form {
				return models.BlogPostForm{
					Title:     *title,
					Content:   *content,
					Excerpt:   *excerpt,
					Tags:      *tags,
					Published: *published,
					Featured:  *featured,
					Author:    *author,
					ImagePath: *image,
				}
			}
		},
	}
}
