// Package dashboard aggregates read-only stats across every resource
// collection: per-resource counts and a merged recent-activity feed. Fetches
// fan out in parallel and failures stay isolated per resource — one broken
// endpoint dims its own panel instead of blanking the dashboard.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/portfolio-admin/manager"
	"github.com/rpupo63/portfolio-admin/models"
)

// DefaultInterval is the auto-refresh period.
const DefaultInterval = 5 * time.Minute

// recentLimit caps the merged activity feed.
const recentLimit = 8

// Activity is one entry in the recent-activity feed, tagged with its
// resource type.
type Activity struct {
	Type  string
	Title string
	Time  time.Time
}

// Stats is one dashboard snapshot. Counts and Errors are keyed by resource
// name; a resource appears in exactly one of the two.
type Stats struct {
	FetchedAt time.Time
	Counts    map[string]int
	Errors    map[string]error
	Recent    []Activity
}

// Failed reports whether any resource fetch failed in this snapshot.
func (s Stats) Failed() bool {
	return len(s.Errors) > 0
}

// Aggregator issues the parallel list fetches and derives the snapshot.
type Aggregator struct {
	projects     *manager.Manager[models.Project]
	blogs        *manager.Manager[models.BlogPost]
	skills       *manager.Manager[models.Skill]
	experience   *manager.Manager[models.Experience]
	testimonials *manager.Manager[models.Testimonial]
	resumes      *manager.Manager[models.Resume]
	contacts     *manager.Manager[models.ContactMessage]
	logger       zerolog.Logger
}

func New(
	projects *manager.Manager[models.Project],
	blogs *manager.Manager[models.BlogPost],
	skills *manager.Manager[models.Skill],
	experience *manager.Manager[models.Experience],
	testimonials *manager.Manager[models.Testimonial],
	resumes *manager.Manager[models.Resume],
	contacts *manager.Manager[models.ContactMessage],
) *Aggregator {
	return &Aggregator{
		projects:     projects,
		blogs:        blogs,
		skills:       skills,
		experience:   experience,
		testimonials: testimonials,
		resumes:      resumes,
		contacts:     contacts,
		logger:       log.With().Str("component", "dashboard").Logger(),
	}
}

// Snapshot fetches every collection in parallel and computes counts plus the
// merged recent-activity feed. Each closure records its own result and
// returns nil, so one failure never cancels or hides the others.
func (a *Aggregator) Snapshot(ctx context.Context) Stats {
	var (
		projects     []models.Project
		blogs        []models.BlogPost
		skills       []models.Skill
		experience   []models.Experience
		testimonials []models.Testimonial
		resumes      []models.Resume
		contacts     []models.ContactMessage

		errProjects     error
		errBlogs        error
		errSkills       error
		errExperience   error
		errTestimonials error
		errResumes      error
		errContacts     error
	)

	var g errgroup.Group
	g.Go(func() error { projects, errProjects = a.projects.List(ctx); return nil })
	g.Go(func() error { blogs, errBlogs = a.blogs.List(ctx); return nil })
	g.Go(func() error { skills, errSkills = a.skills.List(ctx); return nil })
	g.Go(func() error { experience, errExperience = a.experience.List(ctx); return nil })
	g.Go(func() error { testimonials, errTestimonials = a.testimonials.List(ctx); return nil })
	g.Go(func() error { resumes, errResumes = a.resumes.List(ctx); return nil })
	g.Go(func() error { contacts, errContacts = a.contacts.List(ctx); return nil })
	_ = g.Wait()

	stats := Stats{
		FetchedAt: time.Now(),
		Counts:    make(map[string]int),
		Errors:    make(map[string]error),
	}

	record := func(name string, count int, err error) {
		if err != nil {
			a.logger.Warn().Err(err).Str("resource", name).Msg("Dashboard fetch failed")
			stats.Errors[name] = err
			return
		}
		stats.Counts[name] = count
	}

	record("projects", len(projects), errProjects)
	record("blogs", len(blogs), errBlogs)
	record("skills", len(skills), errSkills)
	record("experience", len(experience), errExperience)
	record("testimonials", len(testimonials), errTestimonials)
	record("resumes", len(resumes), errResumes)
	record("contacts", len(contacts), errContacts)

	stats.Recent = recentActivity(projects, blogs, contacts, skills)
	return stats
}

// Poll runs fn with a fresh snapshot immediately and then on every tick
// until the context is cancelled.
func (a *Aggregator) Poll(ctx context.Context, interval time.Duration, fn func(Stats)) {
	fn(a.Snapshot(ctx))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(a.Snapshot(ctx))
		}
	}
}

// recentActivity merges the newest items per type — three projects, two blog
// posts, two contact messages, one skill — sorted by timestamp descending
// and truncated to the display limit. Skills carry no timestamp and sort
// last.
func recentActivity(projects []models.Project, blogs []models.BlogPost, contacts []models.ContactMessage, skills []models.Skill) []Activity {
	var activities []Activity

	sort.SliceStable(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })
	for _, p := range firstN(projects, 3) {
		activities = append(activities, Activity{Type: "project", Title: p.Title, Time: p.CreatedAt})
	}

	sort.SliceStable(blogs, func(i, j int) bool { return blogs[i].CreatedAt.After(blogs[j].CreatedAt) })
	for _, b := range firstN(blogs, 2) {
		activities = append(activities, Activity{Type: "blog", Title: b.Title, Time: b.CreatedAt})
	}

	sort.SliceStable(contacts, func(i, j int) bool { return contacts[i].SubmittedAt.After(contacts[j].SubmittedAt) })
	for _, c := range firstN(contacts, 2) {
		activities = append(activities, Activity{Type: "contact", Title: c.Subject, Time: c.SubmittedAt})
	}

	for _, s := range firstN(skills, 1) {
		activities = append(activities, Activity{Type: "skill", Title: s.Name})
	}

	sort.SliceStable(activities, func(i, j int) bool { return activities[i].Time.After(activities[j].Time) })
	return firstN(activities, recentLimit)
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
