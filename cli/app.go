// Package cli is the admin command surface. Every resource screen runs on
// the same generic manager engine; each resource contributes only its flag
// bindings and a table renderer.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/config"
	"github.com/rpupo63/portfolio-admin/dashboard"
	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/models"
	"github.com/rpupo63/portfolio-admin/session"
)

// App wires the session, client, managers and dashboard together.
type App struct {
	cfg     map[string]string
	in      io.Reader
	out     io.Writer
	store   *session.Store
	guard   session.Guard
	auth    *session.Service
	api     *client.Client
	confirm manager.Confirmer
	logger  zerolog.Logger

	projects     *manager.Manager[models.Project]
	blogs        *manager.Manager[models.BlogPost]
	skills       *manager.Manager[models.Skill]
	experience   *manager.Manager[models.Experience]
	testimonials *manager.Manager[models.Testimonial]
	resumes      *manager.Manager[models.Resume]
	contacts     *manager.Manager[models.ContactMessage]
	board        *dashboard.Aggregator
}

type AppOption func(*App)

// WithStreams replaces stdin/stdout, used by tests.
func WithStreams(in io.Reader, out io.Writer) AppOption {
	return func(a *App) {
		a.in = in
		a.out = out
	}
}

// WithConfirmer replaces the terminal confirmer.
func WithConfirmer(confirm manager.Confirmer) AppOption {
	return func(a *App) {
		a.confirm = confirm
	}
}

func NewApp(cfg map[string]string, opts ...AppOption) *App {
	a := &App{
		cfg:    cfg,
		in:     os.Stdin,
		out:    os.Stdout,
		logger: log.With().Str("component", "cli").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	sessionPath := config.GetString(cfg, "PORTFOLIO_SESSION_FILE", session.DefaultPath())
	baseURL := config.GetString(cfg, "API_BASE_URL", "http://127.0.0.1:8000/api")

	a.store = session.NewStore(sessionPath)
	a.guard = session.NewGuard(a.store)
	a.auth = session.NewService(baseURL, a.store)
	a.api = client.New(baseURL, a.store, client.WithUnauthorizedHandler(func() {
		fmt.Fprintln(a.out, "Session expired or rejected. Run 'login' to sign in again.")
	}))

	if a.confirm == nil {
		a.confirm = manager.TerminalConfirmer{In: a.in, Out: a.out}
	}

	a.projects = manager.New[models.Project](a.api, manager.Descriptor{Name: "project", Path: "/projects/"})
	a.blogs = manager.New[models.BlogPost](a.api, manager.Descriptor{Name: "blog post", Path: "/blogs/"})
	a.skills = manager.New[models.Skill](a.api, manager.Descriptor{Name: "skill", Path: "/skills/"})
	a.experience = manager.New[models.Experience](a.api, manager.Descriptor{Name: "experience", Path: "/experience/"})
	a.testimonials = manager.New[models.Testimonial](a.api, manager.Descriptor{Name: "testimonial", Path: "/testimonials/"})
	a.resumes = manager.New[models.Resume](a.api, manager.Descriptor{Name: "resume", Path: "/resumes/"},
		manager.WithListHook[models.Resume](a.warnMultipleActive))
	a.contacts = manager.New[models.ContactMessage](a.api, manager.Descriptor{Name: "contact message", Path: "/contacts/"})

	a.board = dashboard.New(a.projects, a.blogs, a.skills, a.experience, a.testimonials, a.resumes, a.contacts)
	return a
}

// warnMultipleActive surfaces the advisory "at most one active resume"
// invariant: the client warns when it observes a violation, it does not
// block.
func (a *App) warnMultipleActive(resumes []models.Resume) {
	if active := models.CountActive(resumes); active > 1 {
		a.logger.Warn().Int("active", active).Msg("More than one resume is marked active")
		fmt.Fprintf(a.out, "Warning: %d resumes are marked active; only one should be.\n", active)
	}
}

// Run dispatches one command. Admin commands are gated by the session guard
// so an expired session is sent back to login instead of flashing an admin
// screen that would immediately 401.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return fmt.Errorf("no command given")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return a.runLogin(ctx, rest)
	case "logout":
		return a.auth.Logout()
	case "status":
		return a.runStatus()
	case "prefs":
		return a.runPrefs(rest)
	case "contact-form":
		return a.runContactForm(ctx, rest)
	}

	if !a.guard.IsAuthenticated() {
		return session.ErrNotLoggedIn
	}

	switch command {
	case "dashboard":
		return a.runDashboard(ctx, rest)
	case "projects":
		return a.projectCommands().run(ctx, rest)
	case "blogs":
		return a.blogCommands().run(ctx, rest)
	case "skills":
		return a.skillCommands().run(ctx, rest)
	case "experience":
		return a.experienceCommands().run(ctx, rest)
	case "testimonials":
		return a.testimonialCommands().run(ctx, rest)
	case "resumes":
		return a.resumeCommands().run(ctx, rest)
	case "contacts":
		return a.contactCommands().run(ctx, rest)
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `Usage: portfolio-admin <command> [args]

Commands:
  login [-username U] [-password P] [-refresh]   obtain or refresh tokens
  logout                                         clear the stored session
  status                                         show session state
  dashboard [-watch]                             counts and recent activity
  prefs -compact=<bool>                          persist output preference
  contact-form -name N -email E -message M       submit the public contact form
  projects|blogs|skills|experience|testimonials|resumes|contacts <verb>

Resource verbs: list, create, update -id N, delete -id N; plus
  resumes download -id N [-dir D], resumes activate -id N,
  contacts read -id N`)
}
