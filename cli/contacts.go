package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/rpupo63/portfolio-admin/models"
)

// contactCommands lists, marks read and deletes messages. Messages are only
// ever created from the public form, so create and update are intercepted
// before the generic engine can offer them.
func (a *App) contactCommands() resourceCommands[models.ContactMessage] {
	commands := resourceCommands[models.ContactMessage]{
		app: a,
		mgr: a.contacts,
		render: func(w io.Writer, compact bool, items []models.ContactMessage) {
			tw := table(w)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSUBJECT\tSTATUS\tSUBMITTED")
			for _, m := range items {
				status := "Unread"
				if m.Read {
					status = "Read"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Name, m.Email, m.Subject, status, m.SubmittedAt.Format("2006-01-02 15:04"))
			}
			tw.Flush()
		},
	}
	commands.extra = a.contactExtras
	return commands
}

func (a *App) contactExtras(ctx context.Context, verb string, args []string) (bool, error) {
	switch verb {
	case "create", "update":
		return true, fmt.Errorf("contact messages come from the public form; use 'contact-form' to submit one")

	case "read":
		fs := flag.NewFlagSet("contacts read", flag.ContinueOnError)
		fs.SetOutput(a.out)
		id := fs.Int("id", 0, "message id")
		if err := fs.Parse(args); err != nil {
			return true, err
		}
		if *id == 0 {
			return true, fmt.Errorf("read requires -id")
		}
		if _, err := a.contacts.Patch(ctx, *id, map[string]any{"read": true}); err != nil {
			return true, err
		}
		fmt.Fprintf(a.out, "Marked message %d as read.\n", *id)
		return true, nil
	}
	return false, nil
}

// runContactForm submits the public contact form. It posts without a session,
// the same way a site visitor would.
func (a *App) runContactForm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("contact-form", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email address")
	subject := fs.String("subject", "", "subject line")
	message := fs.String("message", "", "message body")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := models.ContactForm{Name: *name, Email: *email, Subject: *subject, Message: *message}
	if err := form.Validate(); err != nil {
		return err
	}
	body, err := form.Encode()
	if err != nil {
		return err
	}

	var created models.ContactMessage
	if err := a.api.Post(ctx, "/contacts/", body, &created); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Thanks %s, your message was sent.\n", created.Name)
	return nil
}
