package models

import (
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/client"
	"github.com/rpupo63/portfolio-admin/errs"
)

// BlogPost represents a blog entry. Unpublished posts are never shown on the
// public site; the admin surface sees everything.
type BlogPost struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Published     bool       `json:"published"`
	Featured      bool       `json:"featured"`
	Author        string     `json:"author,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (b BlogPost) Key() int { return b.ID }

// BlogPostForm carries admin-entered blog fields. Tags is raw
// comma-separated input, split on encode.
type BlogPostForm struct {
	Title     string
	Content   string
	Excerpt   string
	Tags      string
	Published bool
	Featured  bool
	Author    string
	ImagePath string
}

func (f BlogPostForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(f.Content) == "" {
		return errs.NewMissingRequiredFieldError("content")
	}
	return nil
}

func (f BlogPostForm) Encode() (*client.Body, error) {
	tags := SplitList(f.Tags)

	if f.ImagePath == "" {
		return client.JSONBody(map[string]any{
			"title":     f.Title,
			"content":   f.Content,
			"excerpt":   f.Excerpt,
			"tags":      tags,
			"published": f.Published,
			"featured":  f.Featured,
			"author":    f.Author,
		})
	}

	return client.NewMultipart().
		WriteField("title", f.Title).
		WriteField("content", f.Content).
		WriteField("excerpt", f.Excerpt).
		WriteJSONField("tags", tags).
		WriteBoolField("published", f.Published).
		WriteBoolField("featured", f.Featured).
		WriteField("author", f.Author).
		WriteFile("image", f.ImagePath).
		Body()
}
